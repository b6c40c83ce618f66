package vm

// Axis maps between coordinates and node indices on one regular grid
// dimension.
//
// ToIndex truncates (coord-min)/delta toward zero rather than rounding.
// Layer-bound lookups and jump application depend on this exact behavior:
// a coordinate between two nodes always maps to the covering node above it.
type Axis struct {
	Min   float64
	Delta float64
	N     int
}

// ToIndex returns the covering node index for a coordinate, clamped to
// [0, N-1].
func (a Axis) ToIndex(c float64) int {
	i := int((c - a.Min) / a.Delta)
	return a.clamp(i)
}

// Nearest returns the index of the node closest to a coordinate, clamped to
// [0, N-1]. Used where nearest-neighbor sampling is wanted (flag projection,
// slowness column copies), as opposed to the covering-index semantics of
// ToIndex.
func (a Axis) Nearest(c float64) int {
	i := int((c-a.Min)/a.Delta + 0.5)
	return a.clamp(i)
}

// ToCoord returns the coordinate of node i.
func (a Axis) ToCoord(i int) float64 {
	return a.Min + float64(i)*a.Delta
}

// Max returns the coordinate of the last node.
func (a Axis) Max() float64 { return a.ToCoord(a.N - 1) }

// RangeIndices returns the inclusive index range covering [lo, hi], with the
// interval first clamped to the axis domain.
func (a Axis) RangeIndices(lo, hi float64) (i0, i1 int) {
	if lo < a.Min {
		lo = a.Min
	}
	if hi > a.Max() {
		hi = a.Max()
	}
	return a.ToIndex(lo), a.ToIndex(hi)
}

// Coords returns the coordinates of all nodes.
func (a Axis) Coords() []float64 {
	c := make([]float64, a.N)
	for i := range c {
		c[i] = a.ToCoord(i)
	}
	return c
}

func (a Axis) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > a.N-1 {
		return a.N - 1
	}
	return i
}
