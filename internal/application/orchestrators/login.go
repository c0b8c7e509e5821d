package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/domain/gym"
	"fitclub/internal/domain/session"
)

// Authenticator defines the backend call needed by Login.
type Authenticator interface {
	Login(ctx context.Context, role string, req gym.LoginRequest) (gym.LoginResponse, error)
}

// SessionWriter persists and removes per-browser sessions.
type SessionWriter interface {
	Set(ctx context.Context, browserID string, s session.Session) error
	Clear(ctx context.Context, browserID string) error
}

// LoginInput carries the login form.
type LoginInput struct {
	BrowserID string
	Role      string
	Email     string
	Password  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API      Authenticator
	Sessions SessionWriter
}

// LoginResult carries where to go after a successful login.
type LoginResult struct {
	Session  session.Session
	Redirect string
}

// ExecuteLogin authenticates against the backend and stores the issued session.
// PRE: input.BrowserID identifies the browser
// POST: On success the browser holds the backend's session and Redirect is the role's dashboard
// INVARIANT: The backend is not called when any field is empty
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if input.Role == "" || email == "" || input.Password == "" {
		return LoginResult{}, ErrLoginFieldsMissing
	}

	resp, err := deps.API.Login(ctx, input.Role, gym.LoginRequest{Email: email, Password: input.Password})
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "role", input.Role, "email", email, "reason", err.Error(), "cause", errors.Unwrap(err))
		return LoginResult{}, err
	}

	sess := session.Session{Role: resp.Role, Token: resp.Token, UserID: resp.UserID, Email: resp.Email}
	if sess.Role == "" {
		sess.Role = input.Role
	}
	if sess.Email == "" {
		sess.Email = email
	}
	if err := sess.Validate(); err != nil {
		slog.Warn("auth_event", "event", "login_rejected", "role", input.Role, "email", email, "reason", err.Error())
		return LoginResult{}, fmt.Errorf("%w: %v", ErrUnexpectedLoginReply, err)
	}

	if err := deps.Sessions.Set(ctx, input.BrowserID, sess); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrSessionNotPersisted, err)
	}

	slog.Info("auth_event", "event", "login_success", "role", sess.Role, "user_id", sess.UserID, "email", sess.Email)
	return LoginResult{Session: sess, Redirect: session.DashboardPath(input.Role)}, nil
}

// LoginMessage renders a login failure. An empty message reads "Login failed".
func LoginMessage(err error) string {
	if IsValidation(err) {
		return err.Error()
	}
	if errors.Is(err, ErrUnexpectedLoginReply) {
		return ErrUnexpectedLoginReply.Error()
	}
	if msg := gymapi.Message(err); msg != "" {
		return msg
	}
	return "Login failed"
}

// ExecuteLogout forgets the browser's session.
// POST: The browser has no session
func ExecuteLogout(ctx context.Context, browserID string, sessions SessionWriter) error {
	if err := sessions.Clear(ctx, browserID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
