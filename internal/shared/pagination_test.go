package shared

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestFromQueryCoercesValues(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=0&limit=500", 1, 10},
		{"page=-3&limit=-1", 1, 10},
		{"page=2&limit=100", 2, 100},
		{"page=abc&limit=xyz", 1, 10},
		{"page=4&limit=25", 4, 25},
		{"page=2.5&limit=20abc", 2, 20},
		{"page=%203&limit=+15", 3, 15},
		{"page=-&limit=.5", 1, 10},
		{"page=9223372036854775807&limit=10", math.MaxInt, 10},
		{"page=99999999999999999999999&limit=10", math.MaxInt, 10},
	}
	for _, tc := range cases {
		q, err := url.ParseQuery(tc.query)
		assert.NoError(t, err)
		got := PageRequestFromQuery(q)
		assert.Equal(t, tc.wantPage, got.Page, tc.query)
		assert.Equal(t, tc.wantLimit, got.Limit, tc.query)
	}
}

func TestNewPaginationTotalPages(t *testing.T) {
	assert.Equal(t, 0, NewPagination(NewPageRequest(1, 10), 0).TotalPages)
	assert.Equal(t, 1, NewPagination(NewPageRequest(1, 10), 10).TotalPages)
	assert.Equal(t, 2, NewPagination(NewPageRequest(1, 10), 11).TotalPages)
	assert.Equal(t, 3, NewPagination(NewPageRequest(3, 1), 3).TotalPages)
}

func TestPageRequestOffset(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int
	}{
		{1, 10, 0},
		{3, 10, 20},
		{math.MaxInt, 10, math.MaxInt},
		{math.MaxInt/100 + 2, 100, math.MaxInt},
		{math.MaxInt/100 + 1, 100, math.MaxInt / 100 * 100},
	}
	for _, tc := range cases {
		got := NewPageRequest(tc.page, tc.limit).Offset()
		assert.Equal(t, tc.want, got, "page=%d limit=%d", tc.page, tc.limit)
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestLargePageKeepsMetaPage(t *testing.T) {
	req := PageRequestFromQuery(url.Values{"page": {"9223372036854775807"}, "limit": {"10"}})
	meta := NewPagination(req, 13)
	assert.Equal(t, math.MaxInt, meta.Page)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, math.MaxInt, req.Offset())
}

func TestNewPageNeverNullData(t *testing.T) {
	page := NewPage[string](nil, NewPageRequest(1, 10), 0)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}
