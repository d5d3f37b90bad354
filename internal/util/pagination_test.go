package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size     int
		offset, limit int
	}{
		{1, 20, 0, 20},
		{3, 10, 20, 10},
		{0, 0, 0, DefaultPageSize},
		{-4, 5, 0, 5},
		{2, 1000, MaxPageSize, MaxPageSize},
	}
	for _, tt := range tests {
		offset, limit := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset)
		assert.Equal(t, tt.limit, limit)
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	p := NewPage("2", "", 10)
	assert.Equal(t, Page{Page: 2, Limit: 10, Offset: 10}, p)

	p = NewPage("abc", "-1", 20)
	assert.Equal(t, Page{Page: 1, Limit: DefaultPageSize, Offset: 0}, p)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 0, TotalPages(0, 20))
	assert.EqualValues(t, 1, TotalPages(20, 20))
	assert.EqualValues(t, 2, TotalPages(21, 20))
	assert.EqualValues(t, 0, TotalPages(5, 0))
}

func TestCalculate_HugePageDoesNotWrap(t *testing.T) {
	t.Parallel()

	offset, limit := Calculate(int(^uint(0)>>1), MaxPageSize)
	assert.Equal(t, MaxPageSize, limit)
	assert.Equal(t, (MaxPage-1)*MaxPageSize, offset)

	p := NewPage("9223372036854775807", "100", 20)
	assert.Equal(t, MaxPage, p.Page)
	assert.Positive(t, p.Offset)
}
