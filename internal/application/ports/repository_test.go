package ports

import (
	"math"
	"testing"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page Page
		want int
	}{
		{Page{Page: 1, PerPage: 10}, 0},
		{Page{Page: 3, PerPage: 10}, 20},
		{Page{Page: 0, PerPage: 10}, 0},
		{Page{Page: -5, PerPage: 10}, 0},
		{Page{Page: 2, PerPage: 0}, 0},
		{Page{Page: math.MaxInt, PerPage: 10}, (MaxPage - 1) * 10},
	}
	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}
