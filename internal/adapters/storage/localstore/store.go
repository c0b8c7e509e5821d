// Package localstore persists small per-browser key/value entries, the
// server-side counterpart of a browser's local storage.
package localstore

import (
	"context"
	"errors"
)

// ErrEmptyBrowserID is returned when a call is not addressed to a browser.
var ErrEmptyBrowserID = errors.New("browser id cannot be empty")

// Store persists string entries per browser id.
// Each call is atomic with respect to other calls for the same browser.
type Store interface {
	// GetItems returns the stored values for keys. Absent keys are omitted.
	GetItems(ctx context.Context, browserID string, keys ...string) (map[string]string, error)
	// SetItems writes all items or none.
	SetItems(ctx context.Context, browserID string, items map[string]string) error
	// RemoveItems deletes keys; removing an absent key is not an error.
	RemoveItems(ctx context.Context, browserID string, keys ...string) error
	// Touch marks the browser's entries as in use so housekeeping only
	// reclaims idle browsers. Values are not changed.
	Touch(ctx context.Context, browserID string) error
}
