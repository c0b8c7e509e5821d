package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"fitclub/internal/domain/gym"
)

// MemberRegistrar defines the backend call needed by RegisterMember.
type MemberRegistrar interface {
	RegisterMember(ctx context.Context, req gym.MemberRegisterRequest) (gym.MemberResponse, error)
}

// RegisterMemberInput carries the signup form.
type RegisterMemberInput struct {
	Name     string
	DOB      string
	Gender   string
	Email    string
	Phone    string
	Password string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	API MemberRegistrar
}

// SignupSuccess is shown once an account exists.
const SignupSuccess = "Account created. You can now log in."

// ExecuteRegisterMember creates a member account through the backend.
// PRE: none
// POST: On success the backend holds a new member; the caller is not logged in
// INVARIANT: The backend is not called unless name, dob, email and password are present
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (string, error) {
	req := gym.MemberRegisterRequest{
		Name:     strings.TrimSpace(input.Name),
		DOB:      strings.TrimSpace(input.DOB),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Gender:   optional(input.Gender),
		Phone:    optional(input.Phone),
	}
	if req.Name == "" || req.DOB == "" || req.Email == "" || req.Password == "" {
		return "", ErrSignupFieldsMissing
	}

	m, err := deps.API.RegisterMember(ctx, req)
	if err != nil {
		return "", err
	}
	slog.Info("auth_event", "event", "member_registered", "member_id", m.MemberID, "email", req.Email)
	return SignupSuccess, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
