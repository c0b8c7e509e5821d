package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fitclub/internal/domain/session"
)

// ClassRegistrar defines the backend call needed by RegisterForClass.
type ClassRegistrar interface {
	RegisterForClass(ctx context.Context, memberID, classID int) error
}

// RegisterForClassInput carries the class registration form.
type RegisterForClassInput struct {
	Member  session.Session
	ClassID string
}

// RegisterForClassDeps holds dependencies for RegisterForClass.
type RegisterForClassDeps struct {
	API ClassRegistrar
}

// ExecuteRegisterForClass registers the logged-in member for a class.
// PRE: input.Member is a member session
// POST: Returns the success message; capacity and duplicates are enforced by the backend
func ExecuteRegisterForClass(ctx context.Context, input RegisterForClassInput, deps RegisterForClassDeps) (string, error) {
	classID := formInt(input.ClassID)
	if classID == 0 {
		return "", ErrInvalidClassID
	}
	if err := deps.API.RegisterForClass(ctx, input.Member.UserID, classID); err != nil {
		return "", err
	}
	slog.Info("class_registration", "member_id", input.Member.UserID, "class_id", classID)
	return fmt.Sprintf("Successfully registered for class %d.", classID), nil
}
