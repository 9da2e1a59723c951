package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Sort)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQueryPagination(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "25")
	values.Set("page", "3")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, 25, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.Offset)
}

func TestParseFilterFromQueryLimitClamped(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "9999")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQueryExplicitOffsetWins(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "10")
	values.Set("page", "4")
	values.Set("offset", "7")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, 7, filter.Offset)
}

func TestParseFilterFromQuerySearchSortFilter(t *testing.T) {
	values := url.Values{}
	values.Set("search", "pump")
	values.Set("sort[name]", "DESC")
	values.Set("sort[created_at]", "sideways")
	values.Set("filter[status]", "Active")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "pump", filter.Search)
	assert.Equal(t, map[string]string{"name": "desc"}, filter.Sort)
	assert.Equal(t, "Active", filter.Filter["status"])
}

func TestParseFilterFromQueryWithPaginationDisabled(t *testing.T) {
	values := url.Values{}
	values.Set("withPagination", "false")

	filter := ParseFilterFromQuery(values)

	assert.False(t, filter.WithPagination)
}
