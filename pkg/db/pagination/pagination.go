// Package pagination implements offset pagination for list endpoints:
// zero-based page, page size and a "field,direction" sort parameter checked
// against a per-resource whitelist.
package pagination

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Pageable binds the page, size and sort query parameters.
type Pageable struct {
	Page int    `form:"page,default=0"`
	Size int    `form:"size"`
	Sort string `form:"sort"`
}

// Normalize clamps page and size to the configured bounds.
func (p Pageable) Normalize(defaultSize, maxSize int) Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// Page is one page of results together with totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a Page from a slice and the total row count.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// OrderClause resolves the sort parameter against a column whitelist.
// The parameter has the form "field" or "field,desc"; unknown fields fall
// back to defaultClause so callers never interpolate raw input into SQL.
func OrderClause(sort string, allowed map[string]string, defaultClause string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return defaultClause
	}

	field := sort
	dir := "asc"
	if i := strings.IndexByte(sort, ','); i >= 0 {
		field = strings.TrimSpace(sort[:i])
		if strings.EqualFold(strings.TrimSpace(sort[i+1:]), "desc") {
			dir = "desc"
		}
	}

	column, ok := allowed[field]
	if !ok {
		return defaultClause
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// Apply adds ordering, offset and limit to stmt.
func Apply(stmt *gorm.DB, p Pageable, order string) *gorm.DB {
	if order != "" {
		stmt = stmt.Order(order)
	}
	return stmt.Offset(p.Page * p.Size).Limit(p.Size)
}
