// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/pkg/pointer"
)

/*
TestListQuery_Filters verifies that every filter becomes one ANDed,
parameterized condition.
*/
func TestListQuery_Filters(t *testing.T) {
	year := 1994
	query, args, err := listQuery(Filter{Category: "movie", Genre: "drama", Name: "Pulp Fiction", Year: &year}, 10, 20)
	require.NoError(t, err)

	assert.Equal(t, []any{"movie", "drama", "Pulp Fiction", 1994}, args)
	assert.Contains(t, query, "c.slug = $1")
	assert.Contains(t, query, "g.slug = $2)")
	assert.Contains(t, query, "t.name = $3")
	assert.Contains(t, query, "t.year = $4")
	assert.Contains(t, query, "COUNT(*) OVER() AS total_count")
	assert.Contains(t, query, "LEFT JOIN catalog.category c ON c.id = t.category_id")
	assert.Contains(t, query, "ORDER BY t.name, t.id")
	assert.Contains(t, query, "LIMIT 10 OFFSET 20")
}

/*
TestListQuery_NoFilters verifies that an empty filter adds no parameters.
*/
func TestListQuery_NoFilters(t *testing.T) {
	query, args, err := listQuery(Filter{}, 10, 0)
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.NotContains(t, query, "$1")
	assert.Contains(t, query, "AVG(r.score)::float8")
}

// fakeRow scans fixed values into destinations; nil leaves the zero value.
type fakeRow []any

func (row fakeRow) Scan(destinations ...any) error {
	for i, value := range row {
		if value == nil {
			continue
		}
		reflect.ValueOf(destinations[i]).Elem().Set(reflect.ValueOf(value))
	}
	return nil
}

/*
TestScanTitle_Rating verifies that a NULL average stays nil and a computed
mean is carried through with nested terms.
*/
func TestScanTitle_Rating(t *testing.T) {
	unrated, err := scanTitle(fakeRow{int64(1), "Solaris", 1972, nil, nil, nil, nil, nil, []byte("[]")})
	require.NoError(t, err)
	assert.Nil(t, unrated.Rating)
	assert.Nil(t, unrated.Category)
	assert.NotNil(t, unrated.Genres)
	assert.Empty(t, unrated.Genres)

	mean := 7.5
	movie, slug := "Movie", "movie"
	total := 0
	rated, err := scanTitle(fakeRow{
		int64(2), "Stalker", 1979, nil, pointer.To(int64(4)), &mean, &movie, &slug,
		[]byte(`[{"name":"Drama","slug":"drama"}]`), 12,
	}, &total)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.InDelta(t, 7.5, *rated.Rating, 1e-9)
	require.NotNil(t, rated.Category)
	assert.Equal(t, "movie", rated.Category.Slug)
	require.Len(t, rated.Genres, 1)
	assert.Equal(t, "drama", rated.Genres[0].Slug)
	assert.Equal(t, 12, total)
}
