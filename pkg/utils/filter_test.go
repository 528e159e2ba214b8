package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Filter)
	assert.Empty(t, f.Sort)
}

func TestParseFilterFromQueryPagination(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "25")
	values.Set("page", "3")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.Offset)
}

func TestParseFilterFromQueryLimitClamp(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "99999")

	f := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestParseFilterFromQuerySearchAndSort(t *testing.T) {
	values := url.Values{}
	values.Set("search", "станок")
	values.Set("sort[name]", "DESC")
	values.Set("sort[created_at]", "вверх")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "станок", f.Search)
	assert.Equal(t, map[string]string{"name": "desc"}, f.Sort)
}

func TestParseFilterFromQueryFilterValues(t *testing.T) {
	values := url.Values{}
	values.Set("filter[stage]", "new")
	values.Set("filter[team_id]", "1,2,4")
	values.Set("filter[empty]", "")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "new", f.Filter["stage"])
	assert.Equal(t, []string{"1", "2", "4"}, f.Filter["team_id"])
	assert.NotContains(t, f.Filter, "empty")
}

func TestParseUint64Slice(t *testing.T) {
	ids, err := ParseUint64Slice([]string{"1", " 2", "", "40"})
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 40}, ids)

	_, err = ParseUint64Slice([]string{"1", "abc"})
	assert.Error(t, err)
}
