package projections

import (
	"context"
	"log/slog"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/domain/gym"
	"fitclub/internal/domain/session"
)

// TrainerDashboardSource defines the backend calls needed by the trainer dashboard.
type TrainerDashboardSource interface {
	TrainerSchedule(ctx context.Context, trainerID int) ([]gym.ScheduleItem, error)
	TrainerAvailability(ctx context.Context, trainerID int) ([]gym.AvailabilitySlot, error)
}

// TrainerDashboardQuery carries input for the trainer dashboard projection.
type TrainerDashboardQuery struct {
	Trainer session.Session
}

// TrainerDashboardDeps holds dependencies for the trainer dashboard projection.
type TrainerDashboardDeps struct {
	API TrainerDashboardSource
}

// TrainerDashboardView is what the trainer dashboard page renders.
type TrainerDashboardView struct {
	Schedule      []string
	ScheduleEmpty string // set when there is nothing to list
	ScheduleError string

	Availability      []string
	AvailabilityError string
}

// NoSessionsScheduled is shown for an empty schedule.
const NoSessionsScheduled = "No sessions scheduled."

// QueryTrainerDashboard builds the trainer dashboard.
// The schedule and availability are fetched independently; one failing does not hide the other.
// PRE: query.Trainer is a trainer session
func QueryTrainerDashboard(ctx context.Context, query TrainerDashboardQuery, deps TrainerDashboardDeps) TrainerDashboardView {
	var view TrainerDashboardView
	id := query.Trainer.UserID

	items, err := deps.API.TrainerSchedule(ctx, id)
	switch {
	case err != nil:
		view.ScheduleError = "Error loading schedule: " + gymapi.Message(err)
	case len(items) == 0:
		view.ScheduleEmpty = NoSessionsScheduled
	default:
		for _, item := range items {
			view.Schedule = append(view.Schedule, ScheduleLine(item))
		}
	}

	slots, err := deps.API.TrainerAvailability(ctx, id)
	if err != nil {
		slog.Warn("availability_unavailable", "trainer_id", id, "error", gymapi.Message(err))
		view.AvailabilityError = "Error: " + gymapi.Message(err)
		return view
	}
	for _, s := range slots {
		view.Availability = append(view.Availability, s.StartTime+" – "+s.EndTime)
	}
	return view
}

// ScheduleLine renders one schedule entry.
func ScheduleLine(item gym.ScheduleItem) string {
	line := "Class/Session at " + item.StartTime
	if item.HasEnd() {
		line += " – " + item.End()
	}
	return line + " (room: " + item.RoomLabel() + ")"
}
