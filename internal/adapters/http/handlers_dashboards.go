package web

import (
	"net/http"
	"net/url"
	"strconv"

	"fitclub/internal/application/listutil"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/application/projections"
	"fitclub/internal/domain/session"
)

// formResult is the outcome of a dashboard form, shown in that form's result element.
type formResult struct {
	Message string
	Failed  bool
}

func resultOf(msg string, err error) *formResult {
	if err != nil {
		return &formResult{Message: orchestrators.ResultMessage(err), Failed: true}
	}
	return &formResult{Message: msg}
}

// mustSession returns the session placed by Auth. RequireRole guarantees it on dashboard routes.
func mustSession(r *http.Request) session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

// --- Member ---

func (s *server) renderMemberDashboard(w http.ResponseWriter, r *http.Request, register *formResult, classID string) {
	view := projections.QueryMemberDashboard(r.Context(),
		projections.MemberDashboardQuery{Member: mustSession(r)},
		projections.MemberDashboardDeps{API: s.api},
	)
	renderTemplate(w, r, "member_dashboard.html", map[string]any{
		"View":     view,
		"Register": register,
		"ClassID":  classID,
	})
}

// handleMemberDashboard handles GET /ui/dashboard/member
func (s *server) handleMemberDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderMemberDashboard(w, r, nil, "")
}

// handleRegisterForClass handles POST /ui/dashboard/member/register
func (s *server) handleRegisterForClass(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	classID := r.FormValue("class_id")
	msg, err := orchestrators.ExecuteRegisterForClass(r.Context(),
		orchestrators.RegisterForClassInput{Member: mustSession(r), ClassID: classID},
		orchestrators.RegisterForClassDeps{API: s.api},
	)
	if err == nil {
		classID = ""
	}
	s.renderMemberDashboard(w, r, resultOf(msg, err), classID)
}

// --- Trainer ---

func (s *server) renderTrainerDashboard(w http.ResponseWriter, r *http.Request, availability *formResult) {
	view := projections.QueryTrainerDashboard(r.Context(),
		projections.TrainerDashboardQuery{Trainer: mustSession(r)},
		projections.TrainerDashboardDeps{API: s.api},
	)
	renderTemplate(w, r, "trainer_dashboard.html", map[string]any{
		"View":         view,
		"Availability": availability,
	})
}

// handleTrainerDashboard handles GET /ui/dashboard/trainer
func (s *server) handleTrainerDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderTrainerDashboard(w, r, nil)
}

// handleAddAvailability handles POST /ui/dashboard/trainer/availability
func (s *server) handleAddAvailability(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	msg, err := orchestrators.ExecuteAddAvailability(r.Context(), orchestrators.AddAvailabilityInput{
		Trainer: mustSession(r),
		Start:   r.FormValue("start_time"),
		End:     r.FormValue("end_time"),
	}, orchestrators.AddAvailabilityDeps{API: s.api})
	s.renderTrainerDashboard(w, r, resultOf(msg, err))
}

// --- Admin ---

func (s *server) renderAdminDashboard(w http.ResponseWriter, r *http.Request, room, class *formResult) {
	query := projections.AdminDashboardQuery{
		Classes: listutil.ParseListParams(r.URL.Query(), projections.ClassSortColumns),
	}
	view := projections.QueryAdminDashboard(r.Context(), projections.AdminDashboardDeps{API: s.api}, query)
	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"View":        view,
		"Room":        room,
		"Class":       class,
		"SortColumns": projections.ClassSortColumns,
		"PerPage":     listutil.PerPageOptions,
		"Pages":       classPageLinks(view),
	})
}

// pageLink is one pagination control on the classes list.
type pageLink struct {
	N       int
	URL     string
	Current bool
}

func classPageLinks(view projections.AdminDashboardView) []pageLink {
	if !view.ClassesPage.ShowPagination() {
		return nil
	}
	lp := view.ClassesList
	var links []pageLink
	for _, n := range view.ClassesPage.PageNumbers() {
		q := url.Values{}
		q.Set("page", strconv.Itoa(n))
		q.Set("per_page", strconv.Itoa(lp.PerPage))
		if lp.Search != "" {
			q.Set("q", lp.Search)
		}
		if lp.Sort != "" {
			q.Set("sort", lp.Sort)
			q.Set("dir", lp.Dir)
		}
		links = append(links, pageLink{N: n, URL: "/ui/dashboard/admin?" + q.Encode(), Current: n == view.ClassesPage.Page})
	}
	return links
}

// handleAdminDashboard handles GET /ui/dashboard/admin
func (s *server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderAdminDashboard(w, r, nil, nil)
}

// handleCreateRoom handles POST /ui/dashboard/admin/rooms
func (s *server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	msg, err := orchestrators.ExecuteCreateRoom(r.Context(), orchestrators.CreateRoomInput{
		Name:     r.FormValue("name"),
		Capacity: r.FormValue("capacity"),
	}, orchestrators.CreateRoomDeps{API: s.api})
	s.renderAdminDashboard(w, r, resultOf(msg, err), nil)
}

// handleCreateClass handles POST /ui/dashboard/admin/classes
func (s *server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	msg, err := orchestrators.ExecuteCreateClass(r.Context(), orchestrators.CreateClassInput{
		Name:      r.FormValue("name"),
		Start:     r.FormValue("start_time"),
		Capacity:  r.FormValue("capacity"),
		TrainerID: r.FormValue("trainer_id"),
		RoomID:    r.FormValue("room_id"),
	}, orchestrators.CreateClassDeps{API: s.api})
	s.renderAdminDashboard(w, r, nil, resultOf(msg, err))
}
