package gym

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NotAvailable is shown wherever the backend returned no value.
const NotAvailable = "N/A"

// LoginRequest is the body of POST /auth/{role}-login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by the backend on a successful login.
type LoginResponse struct {
	Role   string `json:"role"`
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// MemberRegisterRequest is the body of POST /members/register.
type MemberRegisterRequest struct {
	Name     string  `json:"name"`
	DOB      string  `json:"dob"`
	Gender   *string `json:"gender,omitempty"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
}

// MemberResponse is returned by POST /members/register.
type MemberResponse struct {
	MemberID int    `json:"member_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// MemberDashboard mirrors the backend member dashboard view.
type MemberDashboard struct {
	MemberID               int        `json:"member_id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	LatestMetricType       *string    `json:"latest_metric_type"`
	LatestMetricValue      FlexString `json:"latest_metric_value"`
	TotalClassesRegistered int        `json:"total_classes_registered"`
	UpcomingPTSessions     int        `json:"upcoming_pt_sessions"`
}

// MetricType returns the latest metric type or N/A.
func (d MemberDashboard) MetricType() string {
	if d.LatestMetricType == nil || *d.LatestMetricType == "" {
		return NotAvailable
	}
	return *d.LatestMetricType
}

// MetricValue returns the latest metric value or N/A.
func (d MemberDashboard) MetricValue() string {
	if !d.LatestMetricValue.Valid {
		return NotAvailable
	}
	return d.LatestMetricValue.Value
}

// ClassRegistrationRequest is the body of POST /members/{id}/classes/register.
type ClassRegistrationRequest struct {
	ClassID int `json:"class_id"`
}

// ScheduleItem is one entry of a trainer's combined schedule.
type ScheduleItem struct {
	ItemType  string  `json:"item_type,omitempty"`
	Title     string  `json:"title,omitempty"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	RoomID    *int    `json:"room_id,omitempty"`
	RoomName  *string `json:"room_name,omitempty"`
}

// HasEnd reports whether the item carries an end time.
func (i ScheduleItem) HasEnd() bool {
	return i.EndTime != nil && *i.EndTime != ""
}

// End returns the end time, or "" when absent.
func (i ScheduleItem) End() string {
	if !i.HasEnd() {
		return ""
	}
	return *i.EndTime
}

// RoomLabel prefers the room name and falls back to the room id.
func (i ScheduleItem) RoomLabel() string {
	if i.RoomName != nil && *i.RoomName != "" {
		return *i.RoomName
	}
	if i.RoomID != nil {
		return strconv.Itoa(*i.RoomID)
	}
	return NotAvailable
}

// AvailabilityRequest is the body of POST /trainers/{id}/availability.
type AvailabilityRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilitySlot is returned by the trainer availability endpoints.
type AvailabilitySlot struct {
	AvailabilityID int    `json:"availability_id"`
	TrainerID      int    `json:"trainer_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// RoomCreate is the body of POST /admins/rooms.
type RoomCreate struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// Room is returned by the admin room endpoints.
type Room struct {
	RoomID   int    `json:"room_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// ClassCreate is the body of POST /admins/classes.
type ClassCreate struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	Capacity  int    `json:"capacity"`
	TrainerID int    `json:"trainer_id"`
	RoomID    int    `json:"room_id"`
}

// FitnessClass is returned by the admin class endpoints.
type FitnessClass struct {
	ClassID   int    `json:"class_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	Capacity  int    `json:"capacity"`
	TrainerID int    `json:"trainer_id"`
	RoomID    int    `json:"room_id"`
}

// FlexString holds a JSON scalar that may arrive as a string, a number, or null.
// Decimal columns are serialized either way depending on the backend version.
type FlexString struct {
	Value string
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString{Value: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString{Value: n.String(), Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
