package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

// TestParsePageParams_Defaults verifies that an absent per_page means the whole list.
func TestParsePageParams_Defaults(t *testing.T) {
	p := ParsePageParams(url.Values{})
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != 0 {
		t.Errorf("expected per_page 0, got %d", p.PerPage)
	}
}

// TestParsePageParams_Valid verifies correct parsing of valid page and per_page values.
func TestParsePageParams_Valid(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"3"}, "per_page": {"50"}})
	if p.Page != 3 || p.PerPage != 50 {
		t.Errorf("got %+v", p)
	}
}

// TestParsePageParams_Invalid verifies clamping of bad page and per_page values.
func TestParsePageParams_Invalid(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"-1"}, "per_page": {"25"}})
	if p.Page != 1 {
		t.Errorf("expected page 1 for negative input, got %d", p.Page)
	}
	if p.PerPage != 0 {
		t.Errorf("expected per_page 0 for value outside options, got %d", p.PerPage)
	}
}

// TestParseSortParams verifies allowed columns and direction fallback.
func TestParseSortParams(t *testing.T) {
	tests := []struct {
		name     string
		q        url.Values
		wantSort string
		wantDir  string
	}{
		{"valid", url.Values{"sort": {"name"}, "dir": {"desc"}}, "name", "desc"},
		{"unknown column", url.Values{"sort": {"password"}}, "", "asc"},
		{"bad dir", url.Values{"sort": {"name"}, "dir": {"sideways"}}, "name", "asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSortParams(tt.q, []string{"name", "start_time"})
			if s.Sort != tt.wantSort || s.Dir != tt.wantDir {
				t.Errorf("got %+v, want sort=%q dir=%q", s, tt.wantSort, tt.wantDir)
			}
		})
	}
}

// TestParseListParams_TrimsSearch verifies the q parameter is trimmed.
func TestParseListParams_TrimsSearch(t *testing.T) {
	lp := ParseListParams(url.Values{"q": {"  yoga "}}, nil)
	if lp.Search != "yoga" {
		t.Errorf("Search = %q", lp.Search)
	}
}

// TestNewPageInfo verifies page clamping and the whole-list page size.
func TestNewPageInfo(t *testing.T) {
	p := NewPageInfo(9, 10, 25)
	if p.Page != 3 || p.TotalPages != 3 {
		t.Errorf("got %+v", p)
	}
	if p.StartRow() != 21 || p.EndRow() != 25 {
		t.Errorf("rows = %d..%d", p.StartRow(), p.EndRow())
	}

	all := NewPageInfo(1, 0, 7)
	if all.PerPage != 7 || all.TotalPages != 1 || all.ShowPagination() {
		t.Errorf("whole list = %+v", all)
	}

	empty := NewPageInfo(1, 0, 0)
	if empty.StartRow() != 0 || empty.EndRow() != 0 || empty.TotalPages != 1 {
		t.Errorf("empty = %+v", empty)
	}
}

// TestPageNumbers verifies the 5-button window near both ends.
func TestPageNumbers(t *testing.T) {
	if got := NewPageInfo(1, 10, 100).PageNumbers(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("first page = %v", got)
	}
	if got := NewPageInfo(10, 10, 100).PageNumbers(); !reflect.DeepEqual(got, []int{6, 7, 8, 9, 10}) {
		t.Errorf("last page = %v", got)
	}
	if got := NewPageInfo(1, 10, 15).PageNumbers(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("two pages = %v", got)
	}
}

// TestWindow verifies slicing of the current page.
func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Window(items, NewPageInfo(2, 2, len(items))); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("page 2 = %v", got)
	}
	if got := Window(items, NewPageInfo(3, 2, len(items))); !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("page 3 = %v", got)
	}
	if got := Window(items, NewPageInfo(1, 0, len(items))); len(got) != 5 {
		t.Errorf("whole list = %v", got)
	}
}
