package shared

import (
	"math"
	"net/url"
	"strings"
)

const (
	// DefaultPage is used when the page parameter is missing or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is missing or out of range.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// PageRequest is a normalised page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of wrapping for very large pages.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// NewPageRequest coerces raw values: page <= 0 becomes 1, limit <= 0 or
// above MaxLimit becomes DefaultLimit.
func NewPageRequest(page, limit int) PageRequest {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// PageRequestFromQuery reads page and limit from query parameters.
// Only the leading integer of each value counts ("2.5" is 2, "20abc" is
// 20); values without one fall back to defaults.
func PageRequestFromQuery(q url.Values) PageRequest {
	page, _ := leadingInt(q.Get("page"))
	limit, _ := leadingInt(q.Get("limit"))
	return NewPageRequest(page, limit)
}

// leadingInt parses an optionally signed run of decimal digits at the start
// of s, ignoring whatever follows. Out of range values saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		d := int(s[digits] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		return -n, true
	}
	return n, true
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata.
func NewPagination(req PageRequest, total int) Pagination {
	req = NewPageRequest(req.Page, req.Limit)
	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))
	return Pagination{Total: total, Page: req.Page, Limit: req.Limit, TotalPages: totalPages}
}

// Page is the envelope returned by paginated endpoints.
type Page[T any] struct {
	Data []T        `json:"data"`
	Meta Pagination `json:"meta"`
}

// NewPage builds a page envelope, never emitting a null data array.
func NewPage[T any](data []T, req PageRequest, total int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Meta: NewPagination(req, total)}
}
