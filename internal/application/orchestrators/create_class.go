package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"fitclub/internal/domain/gym"
)

// ClassCreator defines the backend call needed by CreateClass.
type ClassCreator interface {
	CreateClass(ctx context.Context, req gym.ClassCreate) error
}

// CreateClassInput carries the class form.
type CreateClassInput struct {
	Name      string
	Start     string
	Capacity  string
	TrainerID string
	RoomID    string
}

// CreateClassDeps holds dependencies for CreateClass.
type CreateClassDeps struct {
	API ClassCreator
}

// CreateClassSuccess is shown once the class exists.
const CreateClassSuccess = "Class created."

// ExecuteCreateClass schedules a fitness class.
// PRE: caller holds an admin session
// POST: Returns the success message; room and trainer conflicts are enforced by the backend
func ExecuteCreateClass(ctx context.Context, input CreateClassInput, deps CreateClassDeps) (string, error) {
	req := gym.ClassCreate{
		Name:      strings.TrimSpace(input.Name),
		StartTime: strings.TrimSpace(input.Start),
		Capacity:  formInt(input.Capacity),
		TrainerID: formInt(input.TrainerID),
		RoomID:    formInt(input.RoomID),
	}
	if req.Name == "" || req.StartTime == "" || req.Capacity == 0 || req.TrainerID == 0 || req.RoomID == 0 {
		return "", ErrClassFieldsMissing
	}
	if err := deps.API.CreateClass(ctx, req); err != nil {
		return "", err
	}
	slog.Info("class_created", "name", req.Name, "start", req.StartTime, "trainer_id", req.TrainerID, "room_id", req.RoomID)
	return CreateClassSuccess, nil
}
