package vm

import "testing"

func TestAxisRoundTrip(t *testing.T) {
	a := Axis{Min: -5, Delta: 0.5, N: 41}
	for i := 0; i < a.N; i++ {
		if got := a.ToIndex(a.ToCoord(i)); got != i {
			t.Errorf("ToIndex(ToCoord(%d)) = %d", i, got)
		}
	}
}

func TestAxisTruncatesTowardZero(t *testing.T) {
	a := Axis{Min: 0, Delta: 1, N: 10}
	cases := []struct {
		c    float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.99, 0}, // covering node, not nearest
		{1.0, 1},
		{8.999, 8},
		{-3, 0}, // clamped low
		{42, 9}, // clamped high
	}
	for _, c := range cases {
		if got := a.ToIndex(c.c); got != c.want {
			t.Errorf("ToIndex(%g) = %d, want %d", c.c, got, c.want)
		}
	}
}

func TestAxisNearest(t *testing.T) {
	a := Axis{Min: 0, Delta: 1, N: 10}
	if got := a.Nearest(0.49); got != 0 {
		t.Errorf("Nearest(0.49) = %d, want 0", got)
	}
	if got := a.Nearest(0.51); got != 1 {
		t.Errorf("Nearest(0.51) = %d, want 1", got)
	}
	if got := a.Nearest(99); got != 9 {
		t.Errorf("Nearest(99) = %d, want 9", got)
	}
}

func TestAxisRangeIndices(t *testing.T) {
	a := Axis{Min: 0, Delta: 0.5, N: 61} // 0..30
	i0, i1 := a.RangeIndices(-10, 1000)
	if i0 != 0 || i1 != 60 {
		t.Errorf("RangeIndices(-10, 1000) = (%d, %d), want (0, 60)", i0, i1)
	}
	i0, i1 = a.RangeIndices(1, 2)
	if i0 != 2 || i1 != 4 {
		t.Errorf("RangeIndices(1, 2) = (%d, %d), want (2, 4)", i0, i1)
	}
}
