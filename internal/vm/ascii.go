package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ASCIIOptions control the plain-text grid dump.
type ASCIIOptions struct {
	Meters   bool // write coordinates in meters rather than kilometers
	Velocity bool // write velocity (1/slowness) rather than slowness
}

// WriteASCII dumps the slowness grid as whitespace-separated "x y z value"
// rows, one node per line in file order, preceded by a commented header.
// The format is meant for plotting tools and external meshers, not for
// round-tripping; use Write for that.
func (m *Model) WriteASCII(w io.Writer, opts ASCIIOptions) error {
	bw := bufio.NewWriter(w)
	scale := 1.0
	unit := "km"
	if opts.Meters {
		scale = 1000
		unit = "m"
	}
	quantity := "slowness"
	if opts.Velocity {
		quantity = "velocity"
	}
	fmt.Fprintf(bw, "# vm grid %dx%dx%d, coordinates in %s, %s values\n",
		m.Nx(), m.Ny(), m.Nz(), unit, quantity)
	xs, ys, zs := m.XAxis().Coords(), m.YAxis().Coords(), m.ZAxis().Coords()
	for ix, x := range xs {
		for iy, y := range ys {
			col := m.Sl.Column(ix, iy)
			for iz, z := range zs {
				v := col[iz]
				if opts.Velocity && v != 0 {
					v = 1 / v
				}
				if _, err := fmt.Fprintf(bw, "%g %g %g %g\n",
					x*scale, y*scale, z*scale, v); err != nil {
					return fmt.Errorf("vm: writing ascii grid: %w", err)
				}
			}
		}
	}
	return bw.Flush()
}

// WriteASCIIFile writes the ASCII grid dump to a file. The file handle is
// scoped to this call.
func (m *Model) WriteASCIIFile(path string, opts ASCIIOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteASCII(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
