// Package paging implements look-ahead pagination for list endpoints.
package paging

import (
	"net/http"
	"strconv"
)

// PageSize is the default number of rows returned by paged lists.
const PageSize = 20

// LimitPlusOne returns PageSize+1 as int64 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Skip returns the number of documents to skip for the given page.
func Skip(page int) int64 {
	return int64(page-1) * PageSize
}

// Result holds pagination indicators for a trimmed page.
type Result struct {
	Page    int  `json:"page"`
	HasNext bool `json:"hasNext"`
}

// TrimPage trims a slice fetched with LimitPlusOne down to PageSize,
// in place, and reports whether a next page exists.
func TrimPage[T any](rows *[]T, page int) Result {
	res := Result{Page: page}
	if len(*rows) > PageSize {
		*rows = (*rows)[:PageSize]
		res.HasNext = true
	}
	return res
}
