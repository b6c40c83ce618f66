package vm

import (
	"log"
	"math"

	"gonum.org/v1/gonum/interp"
)

// ProjectPoint projects (x, y) onto a line through the origin at clockwise
// angle theta (radians) from the x axis. It returns the signed distance r
// along the line and the projected point coordinates.
func ProjectPoint(x, y, theta float64) (r, xp, yp float64) {
	beta := theta - math.Atan2(y, x)
	r = math.Hypot(x, y) * math.Cos(beta)
	return r, r * math.Cos(theta), r * math.Sin(theta)
}

// Extrude builds a 3D model from a 2D profile (a model with a single y node)
// by sweeping the profile along the line from start to end. The new model's
// bounding box spans start..end horizontally and keeps the source depth
// range; dx <= 0 defaults to the source x spacing, dy <= 0 defaults to dx.
//
// Each new grid column is filled by projecting its (x, y) position onto the
// profile line and clamping the result into the profile's x domain:
// interface depths and jumps are interpolated linearly, flags taken from the
// nearest profile node, and the slowness column copied whole from the
// nearest profile column (no interpolation in z). More than two clamped
// points in a row means the line direction fits the requested extent poorly;
// that is logged and processing continues.
func (m *Model) Extrude(start, end Point3, dx, dy float64) (*Model, error) {
	if m.Ny() != 1 {
		return nil, domainErrorf("extrusion requires a 2D profile with ny=1, model has ny=%d", m.Ny())
	}
	if dx <= 0 {
		dx = m.DX
	}
	if dy <= 0 {
		dy = dx
	}
	theta := math.Atan2(end.Y-start.Y, end.X-start.X)

	out := New(
		Point3{start.X, start.Y, m.Origin.Z},
		Point3{end.X, end.Y, m.Extent.Z},
		dx, dy, m.DZ, m.Nr(),
	)

	// Interpolators over the profile's x axis, in line-relative coordinates.
	rel := Axis{Min: 0, Delta: m.DX, N: m.Nx()}
	xr := rel.Coords()
	depthAt := make([]interp.PiecewiseLinear, m.Nr())
	jumpAt := make([]interp.PiecewiseLinear, m.Nr())
	for i, s := range m.Surfaces {
		if err := depthAt[i].Fit(xr, s.Depth.Values()); err != nil {
			return nil, domainErrorf("interface %d depth profile: %v", i, err)
		}
		if err := jumpAt[i].Fit(xr, s.Jump.Values()); err != nil {
			return nil, domainErrorf("interface %d jump profile: %v", i, err)
		}
	}

	xmax := rel.Max()
	newX := out.XAxis()
	newY := out.YAxis()
	for iy := 0; iy < out.Ny(); iy++ {
		y := newY.ToCoord(iy) - out.Origin.Y
		nclip := 0
		for ix := 0; ix < out.Nx(); ix++ {
			x := newX.ToCoord(ix) - out.Origin.X
			a, _, _ := ProjectPoint(x, y, theta)
			if a <= 0 {
				a = 0
				nclip++
			} else if a >= xmax {
				a = xmax
				nclip++
			}
			for i, s := range out.Surfaces {
				s.Depth.Set(ix, iy, depthAt[i].Predict(a))
				s.Jump.Set(ix, iy, jumpAt[i].Predict(a))
				near := rel.Nearest(a)
				s.DepthFlag.Set(ix, iy, m.Surfaces[i].DepthFlag.At(near, 0))
				s.JumpFlag.Set(ix, iy, m.Surfaces[i].JumpFlag.At(near, 0))
			}
			copy(out.Sl.Column(ix, iy), m.Sl.Column(rel.Nearest(a), 0))
		}
		if nclip > 2 {
			log.Printf("[Extrude] %d points off the profile line at y=%g", nclip-2, y)
		}
	}
	return out, nil
}
