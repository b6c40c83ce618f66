package vm

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// InsertInterface adds a surface to the stack and returns its slot. The slot
// is chosen by comparing maximum depths: the new surface lands after every
// existing surface whose maximum depth it reaches. Per-column monotonicity
// against its neighbours is not checked; pinchouts are legal.
//
// A nil jump defaults to all zeros. Nil flag grids default to the new
// surface's own slot index, in every branch. Flag values of surfaces already
// in the stack are left alone; they record insertion-time positions.
func (m *Model) InsertInterface(depth *Grid2, jump *Grid2, depthFlag, jumpFlag *IntGrid2) (int, error) {
	nx, ny := m.Nx(), m.Ny()
	slot := 0
	for _, s := range m.Surfaces {
		if depth.Max() >= s.Depth.Max() {
			slot++
		}
	}
	if jump == nil {
		jump = NewGrid2(nx, ny)
	}
	if depthFlag == nil {
		depthFlag = NewIntGrid2(nx, ny, int32(slot))
	}
	if jumpFlag == nil {
		jumpFlag = NewIntGrid2(nx, ny, int32(slot))
	}
	for _, g := range []interface{ Dims() (int, int) }{depth, jump, depthFlag, jumpFlag} {
		gx, gy := g.Dims()
		if gx != nx || gy != ny {
			return 0, domainErrorf("interface grid shape (%d,%d) does not match model (%d,%d)",
				gx, gy, nx, ny)
		}
	}
	s := &Surface{Depth: depth, Jump: jump, DepthFlag: depthFlag, JumpFlag: jumpFlag}
	m.Surfaces = append(m.Surfaces, nil)
	copy(m.Surfaces[slot+1:], m.Surfaces[slot:])
	m.Surfaces[slot] = s
	return slot, nil
}

// InsertUniformInterface inserts a flat interface at the given depth with
// default jump and flags.
func (m *Model) InsertUniformInterface(depth float64) (int, error) {
	return m.InsertInterface(UniformGrid2(m.Nx(), m.Ny(), depth), nil, nil, nil)
}

// RemoveInterface deletes slot i from the stack. Flag values of the
// remaining surfaces are NOT renumbered: values recorded at insertion time
// may now point at a removed or shifted slot. The returned slice lists the
// stack positions (after removal) whose flag grids hold any value >= i and
// are therefore stale; dealing with them is the caller's responsibility.
// Removing interfaces in LIFO order keeps the returned slice empty.
func (m *Model) RemoveInterface(i int) ([]int, error) {
	if i < 0 || i >= m.Nr() {
		return nil, domainErrorf("interface %d does not exist (model has %d interfaces)", i, m.Nr())
	}
	m.Surfaces = append(m.Surfaces[:i], m.Surfaces[i+1:]...)
	cutoff := int32(i)
	staleAt := func(v int32) bool { return v >= cutoff }
	var stale []int
	for slot, s := range m.Surfaces {
		if s.DepthFlag.Contains(staleAt) || s.JumpFlag.Contains(staleAt) {
			stale = append(stale, slot)
		}
	}
	sort.Ints(stale)
	return stale, nil
}

// DefineStretchedLayerVelocities fills layer i by stretching a velocity
// function down each column. The control points are distributed evenly
// between the column's top and bottom depths, the endpoints snapped outward
// to the first and last grid nodes when those fall outside the stretched
// span, and velocities linearly interpolated at every node in the layer.
// Values are stored as slowness. Columns where the layer pinches out are
// skipped. A single control point sets a constant velocity.
func (m *Model) DefineStretchedLayerVelocities(i int, vels []float64) error {
	if len(vels) == 0 {
		return domainErrorf("no velocity control points for layer %d", i)
	}
	top, bottom, err := m.LayerBounds(i)
	if err != nil {
		return err
	}
	z := m.ZAxis()
	zc := z.Coords()
	for ix := 0; ix < m.Nx(); ix++ {
		for iy := 0; iy < m.Ny(); iy++ {
			t, b := top.At(ix, iy), bottom.At(ix, iy)
			if !(b > t) {
				continue // pinchout
			}
			iz0, iz1 := z.ToIndex(t), z.ToIndex(b)
			col := m.Sl.Column(ix, iy)
			if len(vels) == 1 {
				for iz := iz0; iz <= iz1; iz++ {
					col[iz] = 1 / vels[0]
				}
				continue
			}
			zi := make([]float64, len(vels))
			vi := make([]float64, len(vels))
			for k := range vels {
				zi[k] = t + (b-t)*float64(k)/float64(len(vels)-1)
				vi[k] = vels[k]
			}
			if zc[iz0] < zi[0] {
				zi = append([]float64{zc[iz0]}, zi...)
				vi = append([]float64{vels[0]}, vi...)
			}
			if zc[iz1] > zi[len(zi)-1] {
				zi = append(zi, zc[iz1])
				vi = append(vi, vels[len(vels)-1])
			}
			var pl interp.PiecewiseLinear
			if err := pl.Fit(zi, vi); err != nil {
				return fmt.Errorf("vm: layer %d velocity function at column (%d,%d): %w",
					i, ix, iy, err)
			}
			for iz := iz0; iz <= iz1; iz++ {
				col[iz] = 1 / pl.Predict(zc[iz])
			}
		}
	}
	return nil
}

// DefineConstantLayerVelocity sets a single velocity everywhere in layer i.
func (m *Model) DefineConstantLayerVelocity(i int, v float64) error {
	return m.DefineStretchedLayerVelocities(i, []float64{v})
}

// DefineConstantLayerGradient fills layer i with v(z) = v0 + dvdz*(z-ztop),
// where ztop is the depth of the column's first node in the layer. A nil v0
// defaults to the velocity immediately above the layer top, or 0 at the
// model top (the top node of such a column then carries zero velocity, i.e.
// infinite slowness, matching the solver-side convention for an undefined
// cap).
func (m *Model) DefineConstantLayerGradient(i int, dvdz float64, v0 *float64) error {
	top, bottom, err := m.LayerBounds(i)
	if err != nil {
		return err
	}
	z := m.ZAxis()
	zc := z.Coords()
	for ix := 0; ix < m.Nx(); ix++ {
		for iy := 0; iy < m.Ny(); iy++ {
			t, b := top.At(ix, iy), bottom.At(ix, iy)
			if !(b > t) {
				continue // pinchout
			}
			iz0, iz1 := z.ToIndex(t), z.ToIndex(b)
			col := m.Sl.Column(ix, iy)
			var base float64
			switch {
			case v0 != nil:
				base = *v0
			case iz0 > 0:
				base = 1 / col[iz0-1]
			}
			for iz := iz0; iz <= iz1; iz++ {
				col[iz] = 1 / (base + (zc[iz]-zc[iz0])*dvdz)
			}
		}
	}
	return nil
}

// ApplyJumps adds each surface's slowness jump to every grid node from the
// surface's covering depth node down, column by column. Repeated calls
// accumulate; pair every ApplyJumps with a RemoveJumps.
func (m *Model) ApplyJumps() { m.offsetJumps(1) }

// RemoveJumps subtracts each surface's slowness jump from the nodes
// ApplyJumps touched. ApplyJumps followed by RemoveJumps restores the grid
// up to floating-point rounding.
func (m *Model) RemoveJumps() { m.offsetJumps(-1) }

func (m *Model) offsetJumps(sign float64) {
	z := m.ZAxis()
	for _, s := range m.Surfaces {
		for ix := 0; ix < m.Nx(); ix++ {
			for iy := 0; iy < m.Ny(); iy++ {
				jp := s.Jump.At(ix, iy)
				if jp == 0 {
					continue
				}
				col := m.Sl.Column(ix, iy)
				for iz := z.ToIndex(s.Depth.At(ix, iy)); iz < len(col); iz++ {
					col[iz] += sign * jp
				}
			}
		}
	}
}

// RecalculateJump rebuilds surface i's jump grid from the slowness contrast
// across the interface: the difference between the node just below and the
// covering node at each column.
func (m *Model) RecalculateJump(i int) error {
	if i < 0 || i >= m.Nr() {
		return domainErrorf("interface %d does not exist (model has %d interfaces)", i, m.Nr())
	}
	s := m.Surfaces[i]
	z := m.ZAxis()
	for ix := 0; ix < m.Nx(); ix++ {
		for iy := 0; iy < m.Ny(); iy++ {
			iz0 := z.ToIndex(s.Depth.At(ix, iy))
			col := m.Sl.Column(ix, iy)
			if iz0+1 >= len(col) {
				s.Jump.Set(ix, iy, 0)
				continue
			}
			s.Jump.Set(ix, iy, col[iz0+1]-col[iz0])
		}
	}
	return nil
}
