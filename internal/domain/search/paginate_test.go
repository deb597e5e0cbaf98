package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		page      int
		wantPage  int
		wantTotal int
		wantStart int
		wantEnd   int
	}{
		{"empty", 0, 1, 1, 1, 0, 0},
		{"first page", 25, 1, 1, 3, 0, 10},
		{"last partial page", 25, 3, 3, 3, 20, 25},
		{"clamped high", 25, 9, 3, 3, 20, 25},
		{"clamped low", 25, 0, 1, 3, 0, 10},
		{"negative", 25, -4, 1, 3, 0, 10},
		{"exact multiple", 20, 2, 2, 2, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.count, tt.page, DefaultPageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantTotal, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
		})
	}
}

func TestPaginateDefaultsPageSize(t *testing.T) {
	p := Paginate(15, 2, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 10, p.Start)
	assert.Equal(t, 15, p.End)
}
