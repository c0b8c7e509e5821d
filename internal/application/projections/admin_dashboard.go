package projections

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/application/listutil"
	"fitclub/internal/domain/gym"
)

// AdminDashboardSource defines the backend calls needed by the admin dashboard.
type AdminDashboardSource interface {
	ListClasses(ctx context.Context) ([]gym.FitnessClass, error)
	ListRooms(ctx context.Context) ([]gym.Room, error)
}

// AdminDashboardDeps holds dependencies for the admin dashboard projection.
type AdminDashboardDeps struct {
	API AdminDashboardSource
}

// AdminDashboardQuery controls how the classes list is filtered, sorted and paged.
type AdminDashboardQuery struct {
	Classes listutil.ListParams
}

// ClassSortColumns are the columns the classes list can be sorted by.
var ClassSortColumns = []string{"class_id", "name", "start_time", "capacity"}

// AdminDashboardView is what the admin dashboard page renders.
type AdminDashboardView struct {
	Classes      []string
	ClassesEmpty string
	ClassesError string
	ClassesPage  listutil.PageInfo
	ClassesList  listutil.ListParams

	Rooms      []string
	RoomsError string
}

// NoClasses is shown when no class matches.
const NoClasses = "No classes."

// QueryAdminDashboard lists classes and rooms.
// PRE: caller holds an admin session
// POST: exactly one of Classes, ClassesEmpty, ClassesError is set
func QueryAdminDashboard(ctx context.Context, deps AdminDashboardDeps, query AdminDashboardQuery) AdminDashboardView {
	view := AdminDashboardView{ClassesList: query.Classes}

	classes, err := deps.API.ListClasses(ctx)
	if err != nil {
		view.ClassesError = "Error: " + gymapi.Message(err)
	} else {
		classes = filterClasses(classes, query.Classes.Search)
		sortClasses(classes, query.Classes.SortParams)
		view.ClassesPage = listutil.NewPageInfo(query.Classes.Page, query.Classes.PerPage, len(classes))
		for _, c := range listutil.Window(classes, view.ClassesPage) {
			view.Classes = append(view.Classes, ClassLine(c))
		}
		if len(view.Classes) == 0 {
			view.ClassesEmpty = NoClasses
		}
	}

	rooms, err := deps.API.ListRooms(ctx)
	if err != nil {
		view.RoomsError = "Error: " + gymapi.Message(err)
		return view
	}
	for _, r := range rooms {
		view.Rooms = append(view.Rooms, fmt.Sprintf("[%d] %s, capacity %d", r.RoomID, r.Name, r.Capacity))
	}
	return view
}

// ClassLine renders one class as "[id] name – start, capacity c, trainer t, room r".
func ClassLine(c gym.FitnessClass) string {
	return fmt.Sprintf("[%d] %s – %s, capacity %d, trainer %d, room %d",
		c.ClassID, c.Name, c.StartTime, c.Capacity, c.TrainerID, c.RoomID)
}

func filterClasses(classes []gym.FitnessClass, search string) []gym.FitnessClass {
	if search == "" {
		return classes
	}
	needle := strings.ToLower(search)
	var out []gym.FitnessClass
	for _, c := range classes {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// sortClasses is stable so an empty sort column keeps backend order.
func sortClasses(classes []gym.FitnessClass, sp listutil.SortParams) {
	var compare func(a, b gym.FitnessClass) int
	switch sp.Sort {
	case "class_id":
		compare = func(a, b gym.FitnessClass) int { return cmp.Compare(a.ClassID, b.ClassID) }
	case "name":
		compare = func(a, b gym.FitnessClass) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case "start_time":
		compare = func(a, b gym.FitnessClass) int { return strings.Compare(a.StartTime, b.StartTime) }
	case "capacity":
		compare = func(a, b gym.FitnessClass) int { return cmp.Compare(a.Capacity, b.Capacity) }
	default:
		return
	}
	if sp.Dir == "desc" {
		asc := compare
		compare = func(a, b gym.FitnessClass) int { return asc(b, a) }
	}
	slices.SortStableFunc(classes, compare)
}
