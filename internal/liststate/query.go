package liststate

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryState is the complete set of parameters determining which slice
// of the collection is requested. Values are always owned by the state;
// reducers copy maps instead of aliasing caller memory.
type QueryState struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]string
	SortField string
	SortOrder SortDirection
}

// Event is one UI affordance change feeding the reducer.
type Event interface{ isEvent() }

// SearchChanged carries the debounced global search text.
type SearchChanged struct{ Text string }

// ColumnFilterChanged replaces the whole filter mapping; the table
// reports its complete current filter set, not a delta.
type ColumnFilterChanged struct{ Filters map[string]string }

// SortChanged carries the primary sort entry. An empty Field means the
// sort was cleared; multi-column sort is not supported.
type SortChanged struct {
	Field     string
	Direction SortDirection
}

// PageChanged requests another page of the current slice.
type PageChanged struct{ Page int }

func (SearchChanged) isEvent()       {}
func (ColumnFilterChanged) isEvent() {}
func (SortChanged) isEvent()         {}
func (PageChanged) isEvent()         {}

// Schema names what one entity kind may filter, sort and search on.
// Unknown fields are dropped at this boundary, never forwarded.
type Schema struct {
	FilterFields []string
	SortFields   []string
	// SearchFields are the fields the global search covers; a non-empty
	// search supersedes column filters on these fields (search wins the
	// last-writer race between the two affordances).
	SearchFields     []string
	DefaultSortField string
	DefaultLimit     int
}

func (s Schema) defaultLimit() int {
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return 20
}

// Initial is the query state before any user interaction.
func (s Schema) Initial() QueryState {
	return QueryState{
		Page:      1,
		Limit:     s.defaultLimit(),
		Filters:   map[string]string{},
		SortField: s.DefaultSortField,
		SortOrder: SortAsc,
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Reduce is pure: it never mutates prev and has no side effects.
// lastPage is the last known page count (0 when no metadata has loaded
// yet) and only bounds PageChanged.
func (s Schema) Reduce(prev QueryState, ev Event, lastPage int) QueryState {
	next := prev
	next.Filters = copyFilters(prev.Filters)

	switch e := ev.(type) {
	case SearchChanged:
		next.Search = strings.TrimSpace(e.Text)
		next.Page = 1
		if next.Search != "" {
			for _, f := range s.SearchFields {
				delete(next.Filters, f)
			}
		}

	case ColumnFilterChanged:
		filters := map[string]string{}
		for field, value := range e.Filters {
			if !contains(s.FilterFields, field) {
				continue
			}
			if value = strings.TrimSpace(value); value == "" {
				continue
			}
			filters[field] = value
		}
		if next.Search != "" {
			for _, f := range s.SearchFields {
				delete(filters, f)
			}
		}
		next.Filters = filters
		next.Page = 1

	case SortChanged:
		if e.Field == "" || !contains(s.SortFields, e.Field) {
			next.SortField = s.DefaultSortField
			next.SortOrder = SortAsc
		} else {
			next.SortField = e.Field
			if e.Direction == SortDesc {
				next.SortOrder = SortDesc
			} else {
				next.SortOrder = SortAsc
			}
		}
		next.Page = 1

	case PageChanged:
		page := e.Page
		if page < 1 {
			page = 1
		}
		if lastPage > 0 && page > lastPage {
			page = lastPage
		}
		next.Page = page
	}

	return next
}

func copyFilters(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
