package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Listing defaults shared by the paginated queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams captures search, sort and 1-based pagination for a listing
// query. SortBy and the search fields are checked against per-entity
// allow-lists; anything else falls back to the entity default.
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// normalized returns a copy with the sort column restricted to the allow-list
// and the page/limit bounds applied.
func (p ListParams) normalized(sortable []string, defaultSort string) ListParams {
	out := p
	out.SortBy = defaultSort
	for _, col := range sortable {
		if col == p.SortBy {
			out.SortBy = p.SortBy
			break
		}
	}
	if strings.EqualFold(p.SortOrder, "DESC") {
		out.SortOrder = "DESC"
	} else {
		out.SortOrder = "ASC"
	}
	if out.Page < 1 {
		out.Page = DefaultPage
	}
	if out.Limit < 1 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	return out
}

// Offset returns the row offset for the 1-based page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// applySearch adds a case-insensitive substring filter across the given
// columns. Columns come from compile-time allow-lists, never from the caller.
func applySearch(q *gorm.DB, search string, columns []string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return q.Where(strings.Join(conds, " OR "), args...)
}

// applyOrder adds the sort column plus an id tie-breaker so page boundaries
// are deterministic.
func applyOrder(q *gorm.DB, p ListParams, table string) *gorm.DB {
	return q.Order(table + "." + p.SortBy + " " + p.SortOrder).Order(table + ".id ASC")
}
