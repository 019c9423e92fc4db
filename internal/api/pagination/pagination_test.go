package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		page     int
		pageSize int
		want     Window
	}{
		{"first of three", 20, 1, 9, Window{Offset: 0, Limit: 9, TotalPages: 3}},
		{"middle page", 20, 2, 9, Window{Offset: 9, Limit: 9, TotalPages: 3}},
		{"short last page", 20, 3, 9, Window{Offset: 18, Limit: 2, TotalPages: 3}},
		{"past the end", 20, 4, 9, Window{Offset: 0, Limit: 0, TotalPages: 3}},
		{"exact fit", 18, 2, 9, Window{Offset: 9, Limit: 9, TotalPages: 2}},
		{"empty collection", 0, 1, 9, Window{Offset: 0, Limit: 0, TotalPages: 1}},
		{"empty collection page two", 0, 2, 9, Window{Offset: 0, Limit: 0, TotalPages: 1}},
		{"single item", 1, 1, 9, Window{Offset: 0, Limit: 1, TotalPages: 1}},
		{"page below one clamps", 20, 0, 9, Window{Offset: 0, Limit: 9, TotalPages: 3}},
		{"negative page clamps", 20, -3, 9, Window{Offset: 0, Limit: 9, TotalPages: 3}},
		{"page size one", 3, 2, 1, Window{Offset: 1, Limit: 1, TotalPages: 3}},
		{"zero page size treated as one", 3, 1, 0, Window{Offset: 0, Limit: 1, TotalPages: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Paginate(tc.total, tc.page, tc.pageSize))
		})
	}
}
