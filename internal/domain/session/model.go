package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Role constants
const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleMember, RoleTrainer, RoleAdmin}

// Storage keys. Each field of a Session is persisted as its own entry.
const (
	KeyRole   = "role"
	KeyToken  = "token"
	KeyUserID = "user_id"
	KeyEmail  = "email"
)

// Keys lists every storage key a Session occupies.
var Keys = []string{KeyRole, KeyToken, KeyUserID, KeyEmail}

// Domain errors
var (
	ErrInvalidRole = errors.New("role must be one of: member, trainer, admin")
	ErrEmptyToken  = errors.New("token cannot be empty")
	ErrEmptyEmail  = errors.New("email cannot be empty")
	ErrInvalidUser = errors.New("user id must be a positive integer")
)

// Session is the client-held identity record issued by the backend at login.
type Session struct {
	Role   string
	Token  string
	UserID int
	Email  string
}

// Validate checks that every field is populated.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s Session) Validate() error {
	if !IsValidRole(s.Role) {
		return ErrInvalidRole
	}
	if strings.TrimSpace(s.Token) == "" {
		return ErrEmptyToken
	}
	if s.UserID <= 0 {
		return ErrInvalidUser
	}
	if strings.TrimSpace(s.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

// Entries flattens the session into its storage entries.
// INVARIANT: Session fields are not mutated
func (s Session) Entries() map[string]string {
	return map[string]string{
		KeyRole:   s.Role,
		KeyToken:  s.Token,
		KeyUserID: strconv.Itoa(s.UserID),
		KeyEmail:  s.Email,
	}
}

// HasRole reports whether the session belongs to the given role.
func (s Session) HasRole(role string) bool {
	return s.Role == role
}

// FromEntries rebuilds a Session from stored entries.
// A missing or empty entry, or a user_id that is not an integer, yields no session.
// PRE: entries may be nil
// POST: Returns (session, true) only when all four entries are usable
func FromEntries(entries map[string]string) (Session, bool) {
	role := entries[KeyRole]
	token := entries[KeyToken]
	rawID := entries[KeyUserID]
	email := entries[KeyEmail]
	if role == "" || token == "" || rawID == "" || email == "" {
		return Session{}, false
	}
	userID, err := strconv.Atoi(rawID)
	if err != nil {
		return Session{}, false
	}
	return Session{Role: role, Token: token, UserID: userID, Email: email}, true
}

// IsValidRole checks whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}

// LoginPath returns the role-specific login page.
func LoginPath(role string) string {
	return "/ui/login/" + role
}

// DashboardPath returns the role-specific dashboard page.
func DashboardPath(role string) string {
	return "/ui/dashboard/" + role
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session placed by NewContext.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
