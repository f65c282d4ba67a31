// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of posts per page when the caller does
// not ask for a specific limit.
const DefaultPageSize = 10

// MaxPageSize bounds the per-page limit. Out-of-range requests are
// clamped, not rejected; the policy is applied the same way on every
// paginated endpoint.
const MaxPageSize = 50

// Params holds sanitized pagination inputs: a 1-indexed page and a
// per-page limit in [1, MaxPageSize].
type Params struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" query parameters. Missing or
// invalid values fall back to page 1 and DefaultPageSize.
func Parse(r *http.Request) Params {
	page := atoiDefault(query.Get(r, "page"), 1)
	limit := atoiDefault(query.Get(r, "limit"), DefaultPageSize)
	return Clamp(page, limit)
}

// Clamp bounds raw pagination values: page floors at 1, limit is kept
// in [1, MaxPageSize].
func Clamp(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Params{Page: page, Limit: limit}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Skip returns the number of documents to skip for Find().SetSkip().
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Limit64 returns the limit as int64 for Find().SetLimit().
func (p Params) Limit64() int64 {
	return int64(p.Limit)
}

// Pages returns the total page count: ceil(total/limit), and 0 when
// there are no matching documents.
func Pages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Meta is the pagination envelope carried on every paginated response.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Meta builds the response envelope values for a total count.
func (p Params) Meta(total int64) Meta {
	return Meta{Page: p.Page, Limit: p.Limit, Pages: Pages(total, p.Limit)}
}
