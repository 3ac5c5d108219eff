// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

/*
TestWindowFromRequest verifies defaults and clamping for limit/offset.
*/
func TestWindowFromRequest(t *testing.T) {
	cases := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", 10, 0},
		{"?limit=5&offset=20", 5, 20},
		{"?limit=500", 100, 0},
		{"?limit=0", 10, 0},
		{"?limit=abc&offset=-1", 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			window := pagination.WindowFromRequest(httptest.NewRequest("GET", "/api/v1/titles"+tc.query, nil))
			assert.Equal(t, tc.limit, window.Limit)
			assert.Equal(t, tc.offset, window.Offset)
		})
	}
}

/*
TestWindow_Meta verifies next/previous links keep other filters.
*/
func TestWindow_Meta(t *testing.T) {
	request := httptest.NewRequest("GET", "http://example.com/api/v1/titles?year=1999&limit=10&offset=10", nil)
	window := pagination.WindowFromRequest(request)

	meta := window.Meta(request, 25)
	assert.Equal(t, 25, meta.Count)
	require.NotNil(t, meta.Next)
	assert.Equal(t, "http://example.com/api/v1/titles?limit=10&offset=20&year=1999", *meta.Next)
	require.NotNil(t, meta.Previous)
	assert.Equal(t, "http://example.com/api/v1/titles?limit=10&year=1999", *meta.Previous)

	last := pagination.Window{Limit: 10, Offset: 20}.Meta(request, 25)
	assert.Nil(t, last.Next)

	first := pagination.Window{Limit: 10}.Meta(request, 5)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)
}

/*
TestPageFromRequest verifies page parsing and range checks.
*/
func TestPageFromRequest(t *testing.T) {
	page, err := pagination.PageFromRequest(httptest.NewRequest("GET", "/reviews", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.Offset())
	assert.NoError(t, page.Check(0), "first page of an empty list exists")

	page, err = pagination.PageFromRequest(httptest.NewRequest("GET", "/reviews?page=3", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, page.Offset())
	assert.NoError(t, page.Check(21))
	assert.ErrorIs(t, page.Check(20), pagination.ErrInvalidPage)

	for _, raw := range []string{"0", "-2", "two"} {
		_, err := pagination.PageFromRequest(httptest.NewRequest("GET", "/reviews?page="+raw, nil))
		assert.ErrorIs(t, err, pagination.ErrInvalidPage, raw)
	}
}

/*
TestPage_Meta verifies that page two links back to the bare first page.
*/
func TestPage_Meta(t *testing.T) {
	request := httptest.NewRequest("GET", "http://example.com/api/v1/titles/1/reviews?page=2", nil)
	page, err := pagination.PageFromRequest(request)
	require.NoError(t, err)

	meta := page.Meta(request, 35)
	require.NotNil(t, meta.Next)
	assert.Equal(t, "http://example.com/api/v1/titles/1/reviews?page=3", *meta.Next)
	require.NotNil(t, meta.Previous)
	assert.Equal(t, "http://example.com/api/v1/titles/1/reviews", *meta.Previous)
}
