package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"empty", nil, 3, [][]int{}},
		{"exact", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"single page", []int{1, 2}, 10, [][]int{{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Paginate(tt.items, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var flat []int
			for _, page := range got {
				assert.LessOrEqual(t, len(page), tt.size)
				flat = append(flat, page...)
			}
			assert.Equal(t, len(tt.items), len(flat))
		})
	}
}

func TestPaginateInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Paginate([]int{1}, size)
		assert.ErrorIs(t, err, types.ErrPageSizeInvalid)
	}
}

func TestPaginateAppendDoesNotClobberNextPage(t *testing.T) {
	pages, err := Paginate([]int{1, 2, 3, 4}, 2)
	require.NoError(t, err)
	_ = append(pages[0], 99)
	assert.Equal(t, []int{3, 4}, pages[1])
}

func TestPaginateAtLeastOne(t *testing.T) {
	pages, err := paginateAtLeastOne([]int{}, 5)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}}, pages)
}
