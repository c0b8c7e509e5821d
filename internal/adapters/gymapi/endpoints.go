package gymapi

import (
	"context"
	"fmt"
	"net/http"

	"fitclub/internal/domain/gym"
)

// Login authenticates against POST /auth/{role}-login.
func (c *Client) Login(ctx context.Context, role string, req gym.LoginRequest) (gym.LoginResponse, error) {
	var out gym.LoginResponse
	err := c.requestJSON(ctx, "/auth/"+role+"-login", Options{Method: http.MethodPost, Body: req}, &out)
	return out, err
}

// RegisterMember creates a member account.
func (c *Client) RegisterMember(ctx context.Context, req gym.MemberRegisterRequest) (gym.MemberResponse, error) {
	var out gym.MemberResponse
	err := c.requestJSON(ctx, "/members/register", Options{Method: http.MethodPost, Body: req}, &out)
	return out, err
}

// MemberDashboard fetches the member dashboard view.
func (c *Client) MemberDashboard(ctx context.Context, memberID int) (gym.MemberDashboard, error) {
	var out gym.MemberDashboard
	err := c.requestJSON(ctx, fmt.Sprintf("/members/%d/dashboard", memberID), Options{}, &out)
	return out, err
}

// RegisterForClass registers a member for a class. The response body is ignored.
func (c *Client) RegisterForClass(ctx context.Context, memberID, classID int) error {
	_, err := c.Request(ctx, fmt.Sprintf("/members/%d/classes/register", memberID), Options{
		Method: http.MethodPost,
		Body:   gym.ClassRegistrationRequest{ClassID: classID},
	})
	return err
}

// TrainerSchedule fetches the trainer's combined class and PT schedule.
func (c *Client) TrainerSchedule(ctx context.Context, trainerID int) ([]gym.ScheduleItem, error) {
	return requestList[gym.ScheduleItem](ctx, c, fmt.Sprintf("/trainers/%d/schedule", trainerID))
}

// TrainerAvailability lists the trainer's availability slots.
func (c *Client) TrainerAvailability(ctx context.Context, trainerID int) ([]gym.AvailabilitySlot, error) {
	return requestList[gym.AvailabilitySlot](ctx, c, fmt.Sprintf("/trainers/%d/availability", trainerID))
}

// AddAvailability adds an availability slot for the trainer.
func (c *Client) AddAvailability(ctx context.Context, trainerID int, req gym.AvailabilityRequest) error {
	_, err := c.Request(ctx, fmt.Sprintf("/trainers/%d/availability", trainerID), Options{Method: http.MethodPost, Body: req})
	return err
}

// CreateRoom creates a room.
func (c *Client) CreateRoom(ctx context.Context, req gym.RoomCreate) error {
	_, err := c.Request(ctx, "/admins/rooms", Options{Method: http.MethodPost, Body: req})
	return err
}

// ListRooms lists all rooms.
func (c *Client) ListRooms(ctx context.Context) ([]gym.Room, error) {
	return requestList[gym.Room](ctx, c, "/admins/rooms")
}

// CreateClass creates a fitness class.
func (c *Client) CreateClass(ctx context.Context, req gym.ClassCreate) error {
	_, err := c.Request(ctx, "/admins/classes", Options{Method: http.MethodPost, Body: req})
	return err
}

// ListClasses lists all fitness classes.
func (c *Client) ListClasses(ctx context.Context) ([]gym.FitnessClass, error) {
	return requestList[gym.FitnessClass](ctx, c, "/admins/classes")
}

// Health calls the backend root status endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Request(ctx, "/", Options{})
	return err
}
