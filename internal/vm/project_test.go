package vm

import (
	"errors"
	"math"
	"testing"
)

func TestProjectPoint(t *testing.T) {
	cases := []struct {
		x, y, theta float64
		wantR       float64
	}{
		{3, 4, 0, 3},
		{3, 4, math.Pi / 2, 4},
		{1, 1, math.Pi / 4, math.Sqrt2},
		{-3, 0, 0, -3}, // behind the line origin: negative distance
	}
	for _, c := range cases {
		r, xp, yp := ProjectPoint(c.x, c.y, c.theta)
		if math.Abs(r-c.wantR) > 1e-12 {
			t.Errorf("ProjectPoint(%g,%g,%g) r = %g, want %g", c.x, c.y, c.theta, r, c.wantR)
		}
		wantX := c.wantR * math.Cos(c.theta)
		wantY := c.wantR * math.Sin(c.theta)
		if math.Abs(xp-wantX) > 1e-12 || math.Abs(yp-wantY) > 1e-12 {
			t.Errorf("ProjectPoint(%g,%g,%g) point = (%g,%g), want (%g,%g)",
				c.x, c.y, c.theta, xp, yp, wantX, wantY)
		}
	}
}

// profile2D builds a 2D model with a linearly dipping interface and
// column-dependent slowness for recognizing which source column a 3D node
// sampled from.
func profile2D(t *testing.T) *Model {
	t.Helper()
	m := New(Point3{0, 0, 0}, Point3{10, 0, 5}, 1, 1, 1, 0)
	depth := NewGrid2(m.Nx(), 1)
	for ix := 0; ix < m.Nx(); ix++ {
		depth.Set(ix, 0, 1+0.2*float64(ix))
		col := m.Sl.Column(ix, 0)
		for iz := range col {
			col[iz] = 0.1 * float64(ix+1)
		}
	}
	if _, err := m.InsertInterface(depth, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestExtrudeRequires2D(t *testing.T) {
	m := New(Point3{0, 0, 0}, Point3{4, 4, 5}, 1, 1, 1, 0)
	_, err := m.Extrude(Point3{}, Point3{X: 4, Y: 4}, 0, 0)
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want DomainError", err)
	}
}

func TestExtrudeAlongProfileLine(t *testing.T) {
	m := profile2D(t)
	out, err := m.Extrude(Point3{X: 0, Y: 0}, Point3{X: 10, Y: 0}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Nx() != m.Nx() || out.Ny() != 1 || out.Nz() != m.Nz() {
		t.Fatalf("dims (%d,%d,%d), want (%d,1,%d)", out.Nx(), out.Ny(), out.Nz(), m.Nx(), m.Nz())
	}
	// a line along the profile reproduces the profile
	for ix := 0; ix < out.Nx(); ix++ {
		want := m.Surfaces[0].Depth.At(ix, 0)
		if got := out.Surfaces[0].Depth.At(ix, 0); math.Abs(got-want) > 1e-9 {
			t.Errorf("depth at ix=%d: %g, want %g", ix, got, want)
		}
		if got := out.Sl.At(ix, 0, 2); got != m.Sl.At(ix, 0, 2) {
			t.Errorf("slowness at ix=%d: %g, want %g", ix, got, m.Sl.At(ix, 0, 2))
		}
	}
}

func TestExtrudeDiagonal(t *testing.T) {
	m := profile2D(t)
	// 3-4-5 line: the projected distance of relative (x, y) is 0.6x + 0.8y
	out, err := m.Extrude(Point3{X: 0, Y: 0}, Point3{X: 6, Y: 8}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out.Nx() != 4 || out.Ny() != 5 {
		t.Fatalf("dims (%d,%d), want (4,5)", out.Nx(), out.Ny())
	}
	cases := []struct {
		ix, iy int
		a      float64
	}{
		{0, 0, 0},
		{3, 4, 10},
		{1, 1, 0.6*2 + 0.8*2},
	}
	for _, c := range cases {
		wantDepth := 1 + 0.2*c.a
		if got := out.Surfaces[0].Depth.At(c.ix, c.iy); math.Abs(got-wantDepth) > 1e-9 {
			t.Errorf("depth at (%d,%d): %g, want %g", c.ix, c.iy, got, wantDepth)
		}
		near := int(c.a + 0.5)
		wantSl := 0.1 * float64(near+1)
		if got := out.Sl.At(c.ix, c.iy, 0); math.Abs(got-wantSl) > 1e-9 {
			t.Errorf("slowness at (%d,%d): %g, want %g", c.ix, c.iy, got, wantSl)
		}
	}
}

func TestExtrudeDefaultsSpacing(t *testing.T) {
	m := profile2D(t)
	out, err := m.Extrude(Point3{X: 0, Y: 0}, Point3{X: 10, Y: 2}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.DX != m.DX || out.DY != m.DX {
		t.Errorf("spacings (%g,%g), want (%g,%g)", out.DX, out.DY, m.DX, m.DX)
	}
}
