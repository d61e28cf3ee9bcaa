package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		name            string
		total, pageSize int
		want            int
	}{
		{"empty result set", 0, 10, 0},
		{"partial last page", 25, 10, 3},
		{"exact multiple", 30, 10, 3},
		{"single page", 7, 10, 1},
		{"invalid page size", 10, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, totalPages(tc.total, tc.pageSize))
		})
	}
}
