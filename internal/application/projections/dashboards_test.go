package projections

import (
	"context"
	"testing"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/application/listutil"
	"fitclub/internal/domain/gym"
	"fitclub/internal/domain/session"
)

// mockGym implements the dashboard sources for testing.
type mockGym struct {
	dashboard    gym.MemberDashboard
	schedule     []gym.ScheduleItem
	availability []gym.AvailabilitySlot
	classes      []gym.FitnessClass
	rooms        []gym.Room
	err          error
	roomsErr     error
	gotID        int
}

func (m *mockGym) MemberDashboard(_ context.Context, id int) (gym.MemberDashboard, error) {
	m.gotID = id
	return m.dashboard, m.err
}

func (m *mockGym) TrainerSchedule(_ context.Context, id int) ([]gym.ScheduleItem, error) {
	m.gotID = id
	return m.schedule, m.err
}

func (m *mockGym) TrainerAvailability(_ context.Context, id int) ([]gym.AvailabilitySlot, error) {
	return m.availability, nil
}

func (m *mockGym) ListClasses(context.Context) ([]gym.FitnessClass, error) {
	return m.classes, m.err
}

func (m *mockGym) ListRooms(context.Context) ([]gym.Room, error) {
	return m.rooms, m.roomsErr
}

func ptr[T any](v T) *T { return &v }

var (
	memberSess  = session.Session{Role: "member", Token: "t", UserID: 8, Email: "ann@club.test"}
	trainerSess = session.Session{Role: "trainer", Token: "t", UserID: 3, Email: "tom@club.test"}
)

func TestQueryMemberDashboard(t *testing.T) {
	api := &mockGym{dashboard: gym.MemberDashboard{
		Name: "Ann", Email: "ann@club.test",
		LatestMetricType:       ptr("weight"),
		LatestMetricValue:      gym.FlexString{Value: "61.5", Valid: true},
		TotalClassesRegistered: 4,
		UpcomingPTSessions:     2,
	}}
	view := QueryMemberDashboard(context.Background(), MemberDashboardQuery{Member: memberSess}, MemberDashboardDeps{API: api})

	if api.gotID != 8 {
		t.Errorf("fetched member %d, want 8", api.gotID)
	}
	if view.Error != "" || view.Summary == nil {
		t.Fatalf("view = %+v", view)
	}
	if view.Summary.Metric != "weight = 61.5" || view.Summary.ClassesRegistered != 4 || view.Summary.UpcomingPTSessions != 2 {
		t.Errorf("summary = %+v", view.Summary)
	}
	if view.PTNote != "See 'Upcoming PT Sessions' count above." {
		t.Errorf("PTNote = %q", view.PTNote)
	}
}

func TestQueryMemberDashboard_MissingMetric(t *testing.T) {
	api := &mockGym{dashboard: gym.MemberDashboard{Name: "Ann"}}
	view := QueryMemberDashboard(context.Background(), MemberDashboardQuery{Member: memberSess}, MemberDashboardDeps{API: api})
	if view.Summary.Metric != "N/A = N/A" {
		t.Errorf("Metric = %q", view.Summary.Metric)
	}
}

func TestQueryMemberDashboard_Error(t *testing.T) {
	api := &mockGym{err: &gymapi.Error{Status: 404, Message: "Member not found"}}
	view := QueryMemberDashboard(context.Background(), MemberDashboardQuery{Member: memberSess}, MemberDashboardDeps{API: api})
	if view.Summary != nil || view.Error != "Error loading dashboard: Member not found" {
		t.Errorf("view = %+v", view)
	}
	if view.PTNote == "" {
		t.Error("PT note is shown even when the summary fails")
	}
}

func TestScheduleLine(t *testing.T) {
	tests := []struct {
		name string
		item gym.ScheduleItem
		want string
	}{
		{"name and end", gym.ScheduleItem{StartTime: "09:00", EndTime: ptr("10:00"), RoomName: ptr("Studio")}, "Class/Session at 09:00 – 10:00 (room: Studio)"},
		{"room id fallback", gym.ScheduleItem{StartTime: "09:00", EndTime: ptr("10:00"), RoomID: ptr(4)}, "Class/Session at 09:00 – 10:00 (room: 4)"},
		{"no end", gym.ScheduleItem{StartTime: "09:00", RoomName: ptr("Studio")}, "Class/Session at 09:00 (room: Studio)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduleLine(tt.item); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryTrainerDashboard(t *testing.T) {
	api := &mockGym{
		schedule:     []gym.ScheduleItem{{StartTime: "09:00", RoomName: ptr("Studio")}},
		availability: []gym.AvailabilitySlot{{StartTime: "12:00", EndTime: "14:00"}},
	}
	view := QueryTrainerDashboard(context.Background(), TrainerDashboardQuery{Trainer: trainerSess}, TrainerDashboardDeps{API: api})
	if api.gotID != 3 {
		t.Errorf("fetched trainer %d, want 3", api.gotID)
	}
	if len(view.Schedule) != 1 || view.ScheduleEmpty != "" || view.ScheduleError != "" {
		t.Errorf("view = %+v", view)
	}
	if len(view.Availability) != 1 || view.Availability[0] != "12:00 – 14:00" {
		t.Errorf("Availability = %v", view.Availability)
	}
}

func TestQueryTrainerDashboard_EmptyAndError(t *testing.T) {
	view := QueryTrainerDashboard(context.Background(), TrainerDashboardQuery{Trainer: trainerSess}, TrainerDashboardDeps{API: &mockGym{}})
	if view.ScheduleEmpty != "No sessions scheduled." {
		t.Errorf("ScheduleEmpty = %q", view.ScheduleEmpty)
	}

	view = QueryTrainerDashboard(context.Background(), TrainerDashboardQuery{Trainer: trainerSess}, TrainerDashboardDeps{API: &mockGym{err: &gymapi.Error{Message: "HTTP 500"}}})
	if view.ScheduleError != "Error loading schedule: HTTP 500" {
		t.Errorf("ScheduleError = %q", view.ScheduleError)
	}
}

func TestQueryAdminDashboard(t *testing.T) {
	api := &mockGym{
		classes: []gym.FitnessClass{{ClassID: 1, Name: "Yoga", StartTime: "2026-10-20T09:00:00", Capacity: 12, TrainerID: 2, RoomID: 3}},
		rooms:   []gym.Room{{RoomID: 3, Name: "Studio", Capacity: 20}},
	}
	view := QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: api}, AdminDashboardQuery{})
	if len(view.Classes) != 1 || view.Classes[0] != "[1] Yoga – 2026-10-20T09:00:00, capacity 12, trainer 2, room 3" {
		t.Errorf("Classes = %v", view.Classes)
	}
	if len(view.Rooms) != 1 || view.Rooms[0] != "[3] Studio, capacity 20" {
		t.Errorf("Rooms = %v", view.Rooms)
	}
}

func TestQueryAdminDashboard_EmptyAndErrors(t *testing.T) {
	view := QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: &mockGym{}}, AdminDashboardQuery{})
	if view.ClassesEmpty != "No classes." {
		t.Errorf("ClassesEmpty = %q", view.ClassesEmpty)
	}

	view = QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: &mockGym{
		err:      &gymapi.Error{Message: "Not authorized"},
		roomsErr: &gymapi.Error{Message: "HTTP 503"},
	}}, AdminDashboardQuery{})
	if view.ClassesError != "Error: Not authorized" || view.RoomsError != "Error: HTTP 503" {
		t.Errorf("view = %+v", view)
	}
}

func TestQueryAdminDashboard_SearchSortPage(t *testing.T) {
	api := &mockGym{classes: []gym.FitnessClass{
		{ClassID: 1, Name: "Yoga Flow", StartTime: "2026-10-21T09:00:00"},
		{ClassID: 2, Name: "Spin", StartTime: "2026-10-20T07:00:00"},
		{ClassID: 3, Name: "yoga basics", StartTime: "2026-10-19T18:00:00"},
		{ClassID: 4, Name: "Power Yoga", StartTime: "2026-10-22T12:00:00"},
	}}

	view := QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: api}, AdminDashboardQuery{
		Classes: listutil.ListParams{
			PageParams: listutil.PageParams{Page: 1, PerPage: 10},
			SortParams: listutil.SortParams{Sort: "start_time", Dir: "desc"},
			Search:     "YOGA",
		},
	})
	if len(view.Classes) != 3 {
		t.Fatalf("Classes = %v", view.Classes)
	}
	for i, wantID := range []string{"[4]", "[1]", "[3]"} {
		if view.Classes[i][:3] != wantID {
			t.Errorf("Classes[%d] = %q, want prefix %s", i, view.Classes[i], wantID)
		}
	}
	if view.ClassesPage.Total != 3 || view.ClassesPage.ShowPagination() {
		t.Errorf("ClassesPage = %+v", view.ClassesPage)
	}
}

func TestQueryAdminDashboard_BackendOrderByDefault(t *testing.T) {
	api := &mockGym{classes: []gym.FitnessClass{{ClassID: 9, Name: "B"}, {ClassID: 2, Name: "A"}}}
	view := QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: api}, AdminDashboardQuery{
		Classes: listutil.ListParams{PageParams: listutil.PageParams{Page: 1}},
	})
	if len(view.Classes) != 2 || view.Classes[0][:3] != "[9]" {
		t.Errorf("Classes = %v", view.Classes)
	}
}

func TestQueryAdminDashboard_NoSearchMatch(t *testing.T) {
	api := &mockGym{classes: []gym.FitnessClass{{ClassID: 1, Name: "Spin"}}}
	view := QueryAdminDashboard(context.Background(), AdminDashboardDeps{API: api}, AdminDashboardQuery{
		Classes: listutil.ListParams{Search: "pilates"},
	})
	if view.ClassesEmpty != NoClasses || len(view.Classes) != 0 {
		t.Errorf("view = %+v", view)
	}
}
