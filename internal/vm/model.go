// Package vm implements the VM Tomography velocity-model container: a dense
// 3D slowness grid bounded by an ordered stack of interface surfaces, the
// exact binary format shared with the external raytracing/inversion solver,
// structural editing of the interface stack, per-layer velocity construction,
// and 2D-to-3D model extrusion.
//
// The external solver is Fortran and indexes inversion-inclusion flags from
// 1, with 0 meaning "excluded". This package is 0-based and uses -1 for
// "excluded"; the codec shifts flag values by one in each direction at the
// file boundary.
package vm

import (
	"fmt"
	"math"
	"strings"
)

// Point3 is an (x, y, z) model coordinate.
type Point3 struct {
	X, Y, Z float64
}

// Surface is one interface (reflector) in the model: a depth grid, a
// slowness-jump grid, and the two inversion-inclusion flag grids. All four
// grids share the model's (nx, ny) horizontal shape.
type Surface struct {
	Depth     *Grid2
	Jump      *Grid2
	DepthFlag *IntGrid2
	JumpFlag  *IntGrid2
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	return &Surface{
		Depth:     s.Depth.Clone(),
		Jump:      s.Jump.Clone(),
		DepthFlag: s.DepthFlag.Clone(),
		JumpFlag:  s.JumpFlag.Clone(),
	}
}

// Model is a VM Tomography velocity model. Slowness lives on a regular
// (nx, ny, nz) grid; interfaces are an ordered stack of Surfaces, shallowest
// first by maximum depth at insertion time (individual columns may pinch
// out). Dimension counts are always derived from the buffers, never stored,
// so the shape of the model cannot drift from its data.
//
// Model is a plain mutable aggregate with no locking; concurrent use is the
// caller's problem.
type Model struct {
	Origin Point3 // minimum corner (x0, y0, z0)
	Extent Point3 // maximum corner (x1, y1, z1)
	DX     float64
	DY     float64
	DZ     float64

	Sl       *Grid3 // slowness, s/km
	Surfaces []*Surface
}

// New creates a model spanning origin..extent with the given node spacings
// and nr zero-depth interfaces whose flags are all FlagExcluded. Node counts
// are round((extent-origin)/spacing)+1 per dimension.
func New(origin, extent Point3, dx, dy, dz float64, nr int) *Model {
	nx := countNodes(origin.X, extent.X, dx)
	ny := countNodes(origin.Y, extent.Y, dy)
	nz := countNodes(origin.Z, extent.Z, dz)
	m := &Model{
		Origin: origin,
		Extent: extent,
		DX:     dx,
		DY:     dy,
		DZ:     dz,
		Sl:     NewGrid3(nx, ny, nz),
	}
	for i := 0; i < nr; i++ {
		m.Surfaces = append(m.Surfaces, &Surface{
			Depth:     NewGrid2(nx, ny),
			Jump:      NewGrid2(nx, ny),
			DepthFlag: NewIntGrid2(nx, ny, FlagExcluded),
			JumpFlag:  NewIntGrid2(nx, ny, FlagExcluded),
		})
	}
	return m
}

func countNodes(lo, hi, delta float64) int {
	if delta <= 0 {
		panic(fmt.Sprintf("vm: nonpositive node spacing %g", delta))
	}
	n := int(math.Round((hi-lo)/delta)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// Nx returns the number of x nodes, derived from the slowness grid.
func (m *Model) Nx() int { nx, _, _ := m.Sl.Dims(); return nx }

// Ny returns the number of y nodes, derived from the slowness grid.
func (m *Model) Ny() int { _, ny, _ := m.Sl.Dims(); return ny }

// Nz returns the number of z nodes, derived from the slowness grid.
func (m *Model) Nz() int { _, _, nz := m.Sl.Dims(); return nz }

// Nr returns the number of interfaces, derived from the surface stack.
func (m *Model) Nr() int { return len(m.Surfaces) }

// XAxis returns the coordinate indexer for the x dimension.
func (m *Model) XAxis() Axis { return Axis{Min: m.Origin.X, Delta: m.DX, N: m.Nx()} }

// YAxis returns the coordinate indexer for the y dimension.
func (m *Model) YAxis() Axis { return Axis{Min: m.Origin.Y, Delta: m.DY, N: m.Ny()} }

// ZAxis returns the coordinate indexer for the z dimension.
func (m *Model) ZAxis() Axis { return Axis{Min: m.Origin.Z, Delta: m.DZ, N: m.Nz()} }

// LayerBounds returns the depth grids bounding layer i: layer 0 is bounded
// above by the model top, layer nr below by the model bottom. The returned
// grids are views for interior interfaces; mutate them and you mutate the
// model.
func (m *Model) LayerBounds(i int) (top, bottom *Grid2, err error) {
	nr := m.Nr()
	if i < 0 || i > nr {
		return nil, nil, domainErrorf("layer %d does not exist (model has %d interfaces)", i, nr)
	}
	nx, ny := m.Nx(), m.Ny()
	if i == 0 {
		top = UniformGrid2(nx, ny, m.Origin.Z)
	} else {
		top = m.Surfaces[i-1].Depth
	}
	if i >= nr {
		bottom = UniformGrid2(nx, ny, m.Extent.Z)
	} else {
		bottom = m.Surfaces[i].Depth
	}
	return top, bottom, nil
}

// LayerAt returns the index of the layer containing the point, or -1 when
// the point is outside every layer's depth range.
func (m *Model) LayerAt(x, y, z float64) int {
	ix := m.XAxis().ToIndex(x)
	iy := m.YAxis().ToIndex(y)
	for i := 0; i <= m.Nr(); i++ {
		top, bottom, _ := m.LayerBounds(i)
		if z >= top.At(ix, iy) && z <= bottom.At(ix, iy) {
			return i
		}
	}
	return -1
}

// Layers returns the layer index of every slowness node, flat in the grid's
// x-major order. A node exactly on an interface belongs to the layer above
// it, consistent with LayerAt.
func (m *Model) Layers() []int32 {
	nx, ny, nz := m.Sl.Dims()
	z := m.ZAxis()
	out := make([]int32, nx*ny*nz)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			base := (ix*ny + iy) * nz
			for iz := 0; iz < nz; iz++ {
				var layer int32
				zc := z.ToCoord(iz)
				for _, s := range m.Surfaces {
					if s.Depth.At(ix, iy) < zc {
						layer++
					}
				}
				out[base+iz] = layer
			}
		}
	}
	return out
}

// LayerSummary returns the slowness range of layer i over all grid nodes
// whose depth falls inside the layer. ok is false for a layer with no nodes
// anywhere (fully pinched out).
func (m *Model) LayerSummary(i int) (smin, smax float64, ok bool) {
	top, bottom, err := m.LayerBounds(i)
	if err != nil {
		return 0, 0, false
	}
	z := m.ZAxis()
	smin = math.Inf(1)
	smax = math.Inf(-1)
	for ix := 0; ix < m.Nx(); ix++ {
		for iy := 0; iy < m.Ny(); iy++ {
			t, b := top.At(ix, iy), bottom.At(ix, iy)
			if !(b > t) {
				continue
			}
			col := m.Sl.Column(ix, iy)
			for iz := z.ToIndex(t); iz <= z.ToIndex(b); iz++ {
				s := col[iz]
				if s < smin {
					smin = s
				}
				if s > smax {
					smax = s
				}
				ok = true
			}
		}
	}
	return smin, smax, ok
}

// String formats a grid-dimension overview in the layout the command-line
// tools print.
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid Dimensions:\n")
	fmt.Fprintf(&b, " xmin = %7.3f, xmax = %7.3f, dx = %7.3f, nx = %5d\n",
		m.Origin.X, m.Extent.X, m.DX, m.Nx())
	fmt.Fprintf(&b, " ymin = %7.3f, ymax = %7.3f, dy = %7.3f, ny = %5d\n",
		m.Origin.Y, m.Extent.Y, m.DY, m.Ny())
	fmt.Fprintf(&b, " zmin = %7.3f, zmax = %7.3f, dz = %7.3f, nz = %5d\n",
		m.Origin.Z, m.Extent.Z, m.DZ, m.Nz())
	fmt.Fprintf(&b, "Interfaces: nr = %d", m.Nr())
	return b.String()
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := &Model{
		Origin: m.Origin,
		Extent: m.Extent,
		DX:     m.DX,
		DY:     m.DY,
		DZ:     m.DZ,
		Sl:     m.Sl.Clone(),
	}
	for _, s := range m.Surfaces {
		c.Surfaces = append(c.Surfaces, s.Clone())
	}
	return c
}
