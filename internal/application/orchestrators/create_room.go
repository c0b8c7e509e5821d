package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"fitclub/internal/domain/gym"
)

// RoomCreator defines the backend call needed by CreateRoom.
type RoomCreator interface {
	CreateRoom(ctx context.Context, req gym.RoomCreate) error
}

// CreateRoomInput carries the room form.
type CreateRoomInput struct {
	Name     string
	Capacity string
}

// CreateRoomDeps holds dependencies for CreateRoom.
type CreateRoomDeps struct {
	API RoomCreator
}

// CreateRoomSuccess is shown once the room exists.
const CreateRoomSuccess = "Room created."

// ExecuteCreateRoom creates a room.
// PRE: caller holds an admin session
// POST: Returns the success message
func ExecuteCreateRoom(ctx context.Context, input CreateRoomInput, deps CreateRoomDeps) (string, error) {
	req := gym.RoomCreate{Name: strings.TrimSpace(input.Name), Capacity: formInt(input.Capacity)}
	if req.Name == "" || req.Capacity == 0 {
		return "", ErrRoomFieldsMissing
	}
	if err := deps.API.CreateRoom(ctx, req); err != nil {
		return "", err
	}
	slog.Info("room_created", "name", req.Name, "capacity", req.Capacity)
	return CreateRoomSuccess, nil
}
