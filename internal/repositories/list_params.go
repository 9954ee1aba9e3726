package repositories

import (
	"strings"

	"dashboard/internal/domain/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListParams carries the body of a paged list request after binding.
// Filters and sort fields use wire names (e.g. "setting.city"); each
// repository maps them onto columns through its collectionSchema.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]string
	SortField string
	SortOrder string
}

// Normalize clamps page/limit and canonicalizes the sort order.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	if strings.EqualFold(p.SortOrder, "desc") {
		p.SortOrder = "desc"
	} else {
		p.SortOrder = "asc"
	}
	return p
}

type column struct {
	name  string // SQL column, possibly qualified
	exact bool   // match with = instead of LIKE
}

// collectionSchema whitelists what a listing may filter and sort on.
// Anything not listed is dropped, never interpolated into SQL.
type collectionSchema struct {
	columns       map[string]column
	searchColumns []string // SQL columns ORed together for global search
	searchFields  []string // wire fields superseded by a non-empty search
	sortable      map[string]string
	defaultSort   string // SQL column used when the sort field is unknown
}

// whereClause builds the WHERE fragment (with leading " WHERE " when non
// empty) and its args. A non-empty search supersedes column filters on the
// fields it covers.
func (s collectionSchema) whereClause(p ListParams) (string, []any) {
	conds := []string{}
	args := []any{}

	covered := map[string]bool{}
	if p.Search != "" {
		for _, f := range s.searchFields {
			covered[f] = true
		}
		like := "%" + p.Search + "%"
		parts := make([]string, 0, len(s.searchColumns))
		for _, col := range s.searchColumns {
			parts = append(parts, col+" LIKE ?")
			args = append(args, like)
		}
		if len(parts) > 0 {
			conds = append(conds, "("+strings.Join(parts, " OR ")+")")
		}
	}

	for field, value := range p.Filters {
		value = strings.TrimSpace(value)
		if value == "" || covered[field] {
			continue
		}
		col, ok := s.columns[field]
		if !ok {
			continue
		}
		if col.exact {
			conds = append(conds, col.name+" = ?")
			args = append(args, value)
		} else {
			conds = append(conds, col.name+" LIKE ?")
			args = append(args, "%"+value+"%")
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s collectionSchema) orderClause(p ListParams) string {
	col, ok := s.sortable[p.SortField]
	if !ok {
		col = s.defaultSort
	}
	dir := "ASC"
	if p.SortOrder == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// pageMeta derives pagination metadata and the effective page after
// clamping to the last page (a request past the end lands on the end).
func pageMeta(total, page, limit int) (models.Meta, int) {
	lastPage := (total + limit - 1) / limit
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}
	return models.Meta{CurrentPage: page, LastPage: lastPage, Total: total}, page
}
