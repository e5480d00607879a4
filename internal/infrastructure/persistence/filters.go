package persistence

import (
	"strings"

	"github.com/freightline/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPaging applies pagination and ordering to a query. A PageSize of zero
// or below means no limit; the ledger reads full document histories that way.
// OrderBy is checked against the caller's column allowlist so a query
// parameter can never reach the ORDER BY clause unvetted.
func applyPaging(query *gorm.DB, filter shared.Filter, sortable map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && sortable[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	return query
}

// applySearch adds a case-insensitive substring match over the given columns.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + search + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}
