package projections

import (
	"context"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/domain/gym"
	"fitclub/internal/domain/session"
)

// MemberDashboardSource defines the backend call needed by the member dashboard.
type MemberDashboardSource interface {
	MemberDashboard(ctx context.Context, memberID int) (gym.MemberDashboard, error)
}

// MemberDashboardQuery carries input for the member dashboard projection.
type MemberDashboardQuery struct {
	Member session.Session
}

// MemberDashboardDeps holds dependencies for the member dashboard projection.
type MemberDashboardDeps struct {
	API MemberDashboardSource
}

// PTSessionsNote points members at the PT count in the summary.
const PTSessionsNote = "See 'Upcoming PT Sessions' count above."

// MemberSummary is the rendered summary block.
type MemberSummary struct {
	Name               string
	Email              string
	Metric             string // "<type> = <value>", N/A for missing parts
	ClassesRegistered  int
	UpcomingPTSessions int
}

// MemberDashboardView is what the member dashboard page renders.
type MemberDashboardView struct {
	Summary *MemberSummary
	Error   string
	PTNote  string
}

// QueryMemberDashboard builds the member dashboard.
// PRE: query.Member is a member session
// POST: Exactly one of Summary and Error is set
func QueryMemberDashboard(ctx context.Context, query MemberDashboardQuery, deps MemberDashboardDeps) MemberDashboardView {
	view := MemberDashboardView{PTNote: PTSessionsNote}
	d, err := deps.API.MemberDashboard(ctx, query.Member.UserID)
	if err != nil {
		view.Error = "Error loading dashboard: " + gymapi.Message(err)
		return view
	}
	view.Summary = &MemberSummary{
		Name:               d.Name,
		Email:              d.Email,
		Metric:             d.MetricType() + " = " + d.MetricValue(),
		ClassesRegistered:  d.TotalClassesRegistered,
		UpcomingPTSessions: d.UpcomingPTSessions,
	}
	return view
}
