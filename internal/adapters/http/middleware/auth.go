package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"fitclub/internal/adapters/storage/localstore"
	"fitclub/internal/domain/session"
)

// SessionStore keeps the login session of each browser in local storage.
type SessionStore struct {
	store localstore.Store
}

// NewSessionStore wraps a local storage backend.
func NewSessionStore(store localstore.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Set persists all four session entries in one write.
// PRE: browserID is non-empty; s passes Validate
// POST: Get(browserID) returns s
func (ss *SessionStore) Set(ctx context.Context, browserID string, s session.Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	if err := ss.store.SetItems(ctx, browserID, s.Entries()); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Get rebuilds the session for browserID.
// Storage failures are logged and read as "no session".
// POST: ok is true only when all four entries are present and usable
func (ss *SessionStore) Get(ctx context.Context, browserID string) (session.Session, bool) {
	if browserID == "" {
		return session.Session{}, false
	}
	entries, err := ss.store.GetItems(ctx, browserID, session.Keys...)
	if err != nil {
		slog.Error("session_read_failed", "error", err)
		return session.Session{}, false
	}
	s, ok := session.FromEntries(entries)
	if !ok {
		return session.Session{}, false
	}
	if err := ss.store.Touch(ctx, browserID); err != nil {
		slog.Warn("session_touch_failed", "error", err)
	}
	return s, true
}

// Clear removes every session entry for browserID.
// POST: Get(browserID) reports no session
func (ss *SessionStore) Clear(ctx context.Context, browserID string) error {
	if err := ss.store.RemoveItems(ctx, browserID, session.Keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

type browserKey struct{}

const browserCookieName = "fitclub_browser"

// browserCookieMaxAge keeps the id for a year, like browser local storage outliving a tab.
const browserCookieMaxAge = 365 * 24 * 60 * 60

// BrowserCookie encodes the browser id into a signed, encrypted cookie.
type BrowserCookie struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewBrowserCookie creates the cookie codec.
// PRE: hashKey is 32 or 64 bytes; blockKey is 16, 24 or 32 bytes
func NewBrowserCookie(hashKey, blockKey []byte, secure bool) *BrowserCookie {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(browserCookieMaxAge)
	return &BrowserCookie{codec: codec, secure: secure}
}

func (bc *BrowserCookie) read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(browserCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var id string
	if err := bc.codec.Decode(browserCookieName, cookie.Value, &id); err != nil {
		slog.Debug("browser_cookie_rejected", "error", err)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (bc *BrowserCookie) write(w http.ResponseWriter, id string) error {
	encoded, err := bc.codec.Encode(browserCookieName, id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   browserCookieMaxAge,
		HttpOnly: true,
		Secure:   bc.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Browser returns middleware that identifies the browser.
// A browser without a valid cookie is issued a fresh random id.
func Browser(bc *BrowserCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := bc.read(r)
			if !ok {
				id = uuid.NewString()
				if err := bc.write(w, id); err != nil {
					slog.Error("browser_cookie_encode_failed", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), browserKey{}, id)))
		})
	}
}

// BrowserID returns the id placed by Browser, or "" outside that middleware.
func BrowserID(ctx context.Context) string {
	id, _ := ctx.Value(browserKey{}).(string)
	return id
}

// ContextWithBrowserID returns ctx carrying id. Intended for tests.
func ContextWithBrowserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, browserKey{}, id)
}

// Auth returns middleware that loads the browser's session into the context.
// It does NOT block anonymous requests; use RequireRole for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := sessions.Get(r.Context(), BrowserID(r.Context())); ok {
				r = r.WithContext(session.NewContext(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole redirects to the role's login page unless the session has that role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok || !s.HasRole(role) {
				http.Redirect(w, r, session.LoginPath(role), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
