package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayes009/photoshare-webapp/internal/pkg/pagination"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name            string
		page, perPage   int
		wantPage, wantN int
	}{
		{name: "defaults", page: 0, perPage: 0, wantPage: 1, wantN: 20},
		{name: "kept", page: 3, perPage: 10, wantPage: 3, wantN: 10},
		{name: "clamped", page: -1, perPage: 500, wantPage: 1, wantN: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.NewParams(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantN, p.PerPage)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		page, info := pagination.Slice(items, pagination.NewParams(2, 2))

		assert.Equal(t, []int{3, 4}, page)
		assert.Equal(t, 5, info.TotalItems)
		assert.Equal(t, 3, info.TotalPages)
		assert.True(t, info.HasNext)
		assert.True(t, info.HasPrev)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, info := pagination.Slice(items, pagination.NewParams(3, 2))

		assert.Equal(t, []int{5}, page)
		assert.False(t, info.HasNext)
	})

	t.Run("past the end", func(t *testing.T) {
		page, _ := pagination.Slice(items, pagination.NewParams(9, 2))

		assert.NotNil(t, page)
		assert.Empty(t, page)
	})

	t.Run("empty list", func(t *testing.T) {
		page, info := pagination.Slice([]int{}, pagination.NewParams(1, 20))

		assert.Empty(t, page)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, "0", info.Headers()["X-Total-Count"])
	})
}
