package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder adds a page", 25, 10, 3},
		{"single partial page", 5, 10, 1},
		{"empty", 0, 10, 0},
		{"limit one", 7, 1, 7},
		{"zero limit", 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}

func TestListParamsNormalized(t *testing.T) {
	sortable := []string{"name", "email"}

	t.Run("defaults applied", func(t *testing.T) {
		p := ListParams{}.normalized(sortable, "name")
		assert.Equal(t, "name", p.SortBy)
		assert.Equal(t, "ASC", p.SortOrder)
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})

	t.Run("sort field outside allow-list falls back", func(t *testing.T) {
		p := ListParams{SortBy: "password"}.normalized(sortable, "name")
		assert.Equal(t, "name", p.SortBy)
	})

	t.Run("allowed sort field kept", func(t *testing.T) {
		p := ListParams{SortBy: "email", SortOrder: "desc"}.normalized(sortable, "name")
		assert.Equal(t, "email", p.SortBy)
		assert.Equal(t, "DESC", p.SortOrder)
	})

	t.Run("unknown order falls back to ASC", func(t *testing.T) {
		p := ListParams{SortOrder: "sideways"}.normalized(sortable, "name")
		assert.Equal(t, "ASC", p.SortOrder)
	})

	t.Run("limit capped", func(t *testing.T) {
		p := ListParams{Limit: 10000}.normalized(sortable, "name")
		assert.Equal(t, MaxLimit, p.Limit)
	})
}

func TestListParamsOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, ListParams{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 30, ListParams{Page: 4, Limit: 10}.Offset())
}
