package vm

import "fmt"

// Grid3 is a dense 3D value grid stored flat in x-major order
// (ix*ny*nz + iy*nz + iz), the same order the VM binary format uses.
// The dimensions travel with the buffer; len(v) == nx*ny*nz always holds.
type Grid3 struct {
	nx, ny, nz int
	v          []float64
}

// NewGrid3 allocates a zeroed nx*ny*nz grid.
func NewGrid3(nx, ny, nz int) *Grid3 {
	if nx < 1 || ny < 1 || nz < 1 {
		panic(fmt.Sprintf("vm: invalid grid dimensions (%d,%d,%d)", nx, ny, nz))
	}
	return &Grid3{nx: nx, ny: ny, nz: nz, v: make([]float64, nx*ny*nz)}
}

// Dims returns the grid dimensions.
func (g *Grid3) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// At returns the value at (ix, iy, iz).
func (g *Grid3) At(ix, iy, iz int) float64 {
	return g.v[g.index(ix, iy, iz)]
}

// Set stores a value at (ix, iy, iz).
func (g *Grid3) Set(ix, iy, iz int, v float64) {
	g.v[g.index(ix, iy, iz)] = v
}

// Column returns the z-column at (ix, iy) as a mutable slice view. Columns
// are contiguous in the flat layout.
func (g *Grid3) Column(ix, iy int) []float64 {
	i0 := g.index(ix, iy, 0)
	return g.v[i0 : i0+g.nz]
}

// Values returns the flat backing slice in file order.
func (g *Grid3) Values() []float64 { return g.v }

// Clone returns a deep copy.
func (g *Grid3) Clone() *Grid3 {
	c := NewGrid3(g.nx, g.ny, g.nz)
	copy(c.v, g.v)
	return c
}

func (g *Grid3) index(ix, iy, iz int) int {
	if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny || iz < 0 || iz >= g.nz {
		panic(fmt.Sprintf("vm: grid index (%d,%d,%d) out of range (%d,%d,%d)",
			ix, iy, iz, g.nx, g.ny, g.nz))
	}
	return ix*g.ny*g.nz + iy*g.nz + iz
}

// Grid2 is a dense 2D float grid stored flat in x-major order (ix*ny + iy),
// used for interface depth and slowness-jump surfaces.
type Grid2 struct {
	nx, ny int
	v      []float64
}

// NewGrid2 allocates a zeroed nx*ny grid.
func NewGrid2(nx, ny int) *Grid2 {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("vm: invalid grid dimensions (%d,%d)", nx, ny))
	}
	return &Grid2{nx: nx, ny: ny, v: make([]float64, nx*ny)}
}

// UniformGrid2 allocates an nx*ny grid with every node set to v.
func UniformGrid2(nx, ny int, v float64) *Grid2 {
	g := NewGrid2(nx, ny)
	for i := range g.v {
		g.v[i] = v
	}
	return g
}

// Dims returns the grid dimensions.
func (g *Grid2) Dims() (nx, ny int) { return g.nx, g.ny }

// At returns the value at (ix, iy).
func (g *Grid2) At(ix, iy int) float64 { return g.v[g.index(ix, iy)] }

// Set stores a value at (ix, iy).
func (g *Grid2) Set(ix, iy int, v float64) { g.v[g.index(ix, iy)] = v }

// Values returns the flat backing slice in file order.
func (g *Grid2) Values() []float64 { return g.v }

// Max returns the maximum node value.
func (g *Grid2) Max() float64 {
	max := g.v[0]
	for _, v := range g.v[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Min returns the minimum node value.
func (g *Grid2) Min() float64 {
	min := g.v[0]
	for _, v := range g.v[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Clone returns a deep copy.
func (g *Grid2) Clone() *Grid2 {
	c := NewGrid2(g.nx, g.ny)
	copy(c.v, g.v)
	return c
}

func (g *Grid2) index(ix, iy int) int {
	if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny {
		panic(fmt.Sprintf("vm: grid index (%d,%d) out of range (%d,%d)",
			ix, iy, g.nx, g.ny))
	}
	return ix*g.ny + iy
}

// IntGrid2 is a dense 2D int32 grid for the inversion-inclusion flags.
// FlagExcluded marks nodes held out of the inversion.
type IntGrid2 struct {
	nx, ny int
	v      []int32
}

// FlagExcluded is the internal sentinel for "excluded from inversion". The
// external solver is 1-based and uses 0 for the same meaning; the codec
// shifts by one at the file boundary.
const FlagExcluded int32 = -1

// NewIntGrid2 allocates an nx*ny flag grid with every node set to v.
func NewIntGrid2(nx, ny int, v int32) *IntGrid2 {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("vm: invalid grid dimensions (%d,%d)", nx, ny))
	}
	g := &IntGrid2{nx: nx, ny: ny, v: make([]int32, nx*ny)}
	for i := range g.v {
		g.v[i] = v
	}
	return g
}

// Dims returns the grid dimensions.
func (g *IntGrid2) Dims() (nx, ny int) { return g.nx, g.ny }

// At returns the value at (ix, iy).
func (g *IntGrid2) At(ix, iy int) int32 { return g.v[g.index(ix, iy)] }

// Set stores a value at (ix, iy).
func (g *IntGrid2) Set(ix, iy int, v int32) { g.v[g.index(ix, iy)] = v }

// Values returns the flat backing slice in file order.
func (g *IntGrid2) Values() []int32 { return g.v }

// Contains reports whether any node satisfies the predicate.
func (g *IntGrid2) Contains(pred func(int32) bool) bool {
	for _, v := range g.v {
		if pred(v) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (g *IntGrid2) Clone() *IntGrid2 {
	c := &IntGrid2{nx: g.nx, ny: g.ny, v: make([]int32, len(g.v))}
	copy(c.v, g.v)
	return c
}

func (g *IntGrid2) index(ix, iy int) int {
	if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny {
		panic(fmt.Sprintf("vm: grid index (%d,%d) out of range (%d,%d)",
			ix, iy, g.nx, g.ny))
	}
	return ix*g.ny + iy
}
