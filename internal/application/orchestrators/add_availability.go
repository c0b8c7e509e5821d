package orchestrators

import (
	"context"
	"log/slog"

	"fitclub/internal/domain/gym"
	"fitclub/internal/domain/session"
)

// AvailabilityWriter defines the backend call needed by AddAvailability.
type AvailabilityWriter interface {
	AddAvailability(ctx context.Context, trainerID int, req gym.AvailabilityRequest) error
}

// AddAvailabilityInput carries the availability form.
type AddAvailabilityInput struct {
	Trainer session.Session
	Start   string
	End     string
}

// AddAvailabilityDeps holds dependencies for AddAvailability.
type AddAvailabilityDeps struct {
	API AvailabilityWriter
}

// AddAvailabilitySuccess is shown once the slot is stored.
const AddAvailabilitySuccess = "Availability slot added."

// ExecuteAddAvailability adds an availability slot for the logged-in trainer.
// PRE: input.Trainer is a trainer session
// POST: Returns the success message; overlap rules are enforced by the backend
func ExecuteAddAvailability(ctx context.Context, input AddAvailabilityInput, deps AddAvailabilityDeps) (string, error) {
	if input.Start == "" || input.End == "" {
		return "", ErrAvailabilityMissing
	}
	req := gym.AvailabilityRequest{StartTime: input.Start, EndTime: input.End}
	if err := deps.API.AddAvailability(ctx, input.Trainer.UserID, req); err != nil {
		return "", err
	}
	slog.Info("availability_added", "trainer_id", input.Trainer.UserID, "start", input.Start, "end", input.End)
	return AddAvailabilitySuccess, nil
}
