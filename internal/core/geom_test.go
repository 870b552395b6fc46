package core

import "testing"

func TestRectEdges(t *testing.T) {
	// An 8x8 board of three-cell tiles plus its frame
	r := NewRect(5, 4, 8*3+2, 8+2)

	if r.Right() != 31 {
		t.Errorf("Right() = %d, expected 31", r.Right())
	}
	if r.Bottom() != 14 {
		t.Errorf("Bottom() = %d, expected 14", r.Bottom())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name             string
		val, n, expected int
	}{
		{"inside", 3, 8, 3},
		{"past the last column", 8, 8, 0},
		{"before the first column", -1, 8, 7},
		{"far negative", -9, 8, 7},
		{"empty range", 5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.val, tc.n); got != tc.expected {
				t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, got, tc.expected)
			}
		})
	}
}
