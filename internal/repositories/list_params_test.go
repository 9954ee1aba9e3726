package repositories

import (
	"strings"
	"testing"
)

func TestNormalizeClampsLimitAndPage(t *testing.T) {
	p := ListParams{Page: 0, Limit: 900, SortOrder: "DESC"}.Normalize()
	if p.Page != 1 {
		t.Fatalf("page not clamped, got %d", p.Page)
	}
	if p.Limit != maxLimit {
		t.Fatalf("limit not clamped, got %d", p.Limit)
	}
	if p.SortOrder != "desc" {
		t.Fatalf("sort order not canonicalized, got %q", p.SortOrder)
	}

	p = ListParams{Limit: 0, SortOrder: "sideways"}.Normalize()
	if p.Limit != defaultLimit {
		t.Fatalf("default limit not applied, got %d", p.Limit)
	}
	if p.SortOrder != "asc" {
		t.Fatalf("unknown sort order should fall back to asc, got %q", p.SortOrder)
	}
}

func TestWhereClauseSearchSupersedesCoveredFilters(t *testing.T) {
	p := ListParams{
		Search:  "budi",
		Filters: map[string]string{"name": "x", "setting.city": "Bandung"},
	}.Normalize()

	where, args := userSchema.whereClause(p)

	if strings.Contains(where, "name LIKE ? AND") && strings.Contains(where, "name = ?") {
		t.Fatalf("name filter should be superseded by search: %q", where)
	}
	// search over 2 columns + city filter
	if len(args) != 3 {
		t.Fatalf("expected 3 args (2 search, 1 city), got %d: %v", len(args), args)
	}
	if !strings.Contains(where, "city LIKE ?") {
		t.Fatalf("city filter should survive search: %q", where)
	}
}

func TestWhereClauseDropsUnknownFields(t *testing.T) {
	p := ListParams{Filters: map[string]string{"password_hash": "x", "name": "budi"}}.Normalize()
	where, args := userSchema.whereClause(p)

	if strings.Contains(where, "password_hash") {
		t.Fatalf("unknown field leaked into SQL: %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
}

func TestOrderClauseWhitelistFallback(t *testing.T) {
	p := ListParams{SortField: "evil; DROP TABLE users", SortOrder: "desc"}.Normalize()
	if got := userSchema.orderClause(p); got != " ORDER BY id DESC" {
		t.Fatalf("unexpected order clause: %q", got)
	}

	p = ListParams{SortField: "setting.city", SortOrder: "asc"}.Normalize()
	if got := userSchema.orderClause(p); got != " ORDER BY city ASC" {
		t.Fatalf("unexpected order clause: %q", got)
	}
}

func TestPageMetaClampsToLastPage(t *testing.T) {
	meta, page := pageMeta(45, 4, 20)
	if page != 3 {
		t.Fatalf("page should clamp to last page, got %d", page)
	}
	if meta.CurrentPage != 3 || meta.LastPage != 3 || meta.Total != 45 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	meta, page = pageMeta(0, 1, 20)
	if page != 1 || meta.LastPage != 1 {
		t.Fatalf("empty collection should still have one page, got page=%d meta=%+v", page, meta)
	}
}
