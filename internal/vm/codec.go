package vm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/vmtomo/internal/binio"
)

// NativeOrder is the byte order used by the file-path helpers. The solver
// writes machine-native files; every deployment target here is
// little-endian.
var NativeOrder binary.ByteOrder = binary.LittleEndian

// The VM binary layout is positional with no magic number or version:
//
//	int32   nx, ny, nz, nr
//	float32 x0, y0, z0, x1, y1, z1
//	float32 dx, dy, dz
//	float32 sl[nx*ny*nz]         x-major
//	float32 rf[nr*nx*ny]         interface-major, then x, then y
//	float32 jp[nr*nx*ny]
//	int32   ir[nr*nx*ny]         1-based on disk; 0 = excluded
//	int32   ij[nr*nx*ny]
//
// Flag values are shifted to the package's 0-based/-1-excluded convention on
// read and shifted back on write, so a read/write cycle is byte-identical.

// Read parses a complete VM model from r.
func Read(r io.Reader, order binary.ByteOrder) (*Model, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vm: reading model: %w", err)
	}
	return decode(buf, order, false)
}

// ReadHeader parses only the dimension header from r. The returned model has
// its grids allocated but unpopulated, which is enough to inspect sizes
// without paying for the grid data.
func ReadHeader(r io.Reader, order binary.ByteOrder) (*Model, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{Offset: 0, Msg: "file shorter than header", Err: err}
		}
		return nil, fmt.Errorf("vm: reading model header: %w", err)
	}
	return decode(buf, order, true)
}

// ReadFile reads a native-order VM model file. The file handle is scoped to
// this call.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, NativeOrder)
}

// ReadHeaderFile reads only the header of a native-order VM model file.
func ReadHeaderFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHeader(f, NativeOrder)
}

const headerSize = 4*4 + 4*6 + 4*3 // counts + corners + spacings

// maxGridNodes caps the node counts a header may declare. Real surveys run
// to a few tens of millions of nodes.
const maxGridNodes = 1 << 30

func decode(buf []byte, order binary.ByteOrder, headOnly bool) (*Model, error) {
	r := binio.NewReader(buf, order)

	var counts [4]int32
	if err := r.Int32s(counts[:]); err != nil {
		return nil, shortf(r, err, "dimension header")
	}
	nx, ny, nz, nr := int(counts[0]), int(counts[1]), int(counts[2]), int(counts[3])
	if nx < 1 || ny < 1 || nz < 1 || nr < 0 {
		return nil, &FormatError{Offset: 0,
			Msg: fmt.Sprintf("implausible dimensions nx=%d ny=%d nz=%d nr=%d", nx, ny, nz, nr)}
	}

	var corners [6]float64
	if err := r.Float32s(corners[:]); err != nil {
		return nil, shortf(r, err, "model corners")
	}
	var spacing [3]float64
	if err := r.Float32s(spacing[:]); err != nil {
		return nil, shortf(r, err, "node spacings")
	}

	// bound the header counts with 64-bit arithmetic before allocating
	// anything; a hostile header must fail here, not in make
	nxy := int64(nx) * int64(ny)
	if nxy > maxGridNodes || nxy*int64(nz) > maxGridNodes || int64(nr)*nxy > maxGridNodes {
		return nil, &FormatError{Offset: 0,
			Msg: fmt.Sprintf("implausible dimensions nx=%d ny=%d nz=%d nr=%d", nx, ny, nz, nr)}
	}
	if !headOnly {
		vals := int64(r.Remaining()) / 4
		if nxy*int64(nz)+4*int64(nr)*nxy > vals {
			return nil, &FormatError{Offset: r.Offset(),
				Msg: fmt.Sprintf("file shorter than the %dx%dx%d/%d header implies",
					nx, ny, nz, nr)}
		}
	}

	m := &Model{
		Origin: Point3{corners[0], corners[1], corners[2]},
		Extent: Point3{corners[3], corners[4], corners[5]},
		DX:     spacing[0],
		DY:     spacing[1],
		DZ:     spacing[2],
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
	if headOnly {
		return m, nil
	}

	if err := r.Float32s(m.Sl.Values()); err != nil {
		return nil, shortf(r, err, "slowness grid")
	}
	for _, s := range m.Surfaces {
		if err := r.Float32s(s.Depth.Values()); err != nil {
			return nil, shortf(r, err, "interface depths")
		}
	}
	for _, s := range m.Surfaces {
		if err := r.Float32s(s.Jump.Values()); err != nil {
			return nil, shortf(r, err, "slowness jumps")
		}
	}
	for _, s := range m.Surfaces {
		if err := r.Int32s(s.DepthFlag.Values()); err != nil {
			return nil, shortf(r, err, "depth flags")
		}
		shiftFlags(s.DepthFlag.Values(), -1)
	}
	for _, s := range m.Surfaces {
		if err := r.Int32s(s.JumpFlag.Values()); err != nil {
			return nil, shortf(r, err, "jump flags")
		}
		shiftFlags(s.JumpFlag.Values(), -1)
	}
	return m, nil
}

func shortf(r *binio.Reader, err error, what string) error {
	return &FormatError{Offset: r.Offset(), Msg: "truncated " + what, Err: err}
}

func shiftFlags(v []int32, by int32) {
	for i := range v {
		v[i] += by
	}
}

// Write serializes the model in the VM binary layout.
func (m *Model) Write(w io.Writer, order binary.ByteOrder) error {
	bw := bufio.NewWriter(w)
	counts := []int32{int32(m.Nx()), int32(m.Ny()), int32(m.Nz()), int32(m.Nr())}
	if err := binary.Write(bw, order, counts); err != nil {
		return fmt.Errorf("vm: writing model: %w", err)
	}
	header := []float32{
		float32(m.Origin.X), float32(m.Origin.Y), float32(m.Origin.Z),
		float32(m.Extent.X), float32(m.Extent.Y), float32(m.Extent.Z),
		float32(m.DX), float32(m.DY), float32(m.DZ),
	}
	if err := binary.Write(bw, order, header); err != nil {
		return fmt.Errorf("vm: writing model: %w", err)
	}
	if err := writeFloats(bw, order, m.Sl.Values()); err != nil {
		return err
	}
	for _, s := range m.Surfaces {
		if err := writeFloats(bw, order, s.Depth.Values()); err != nil {
			return err
		}
	}
	for _, s := range m.Surfaces {
		if err := writeFloats(bw, order, s.Jump.Values()); err != nil {
			return err
		}
	}
	for _, s := range m.Surfaces {
		if err := writeFlags(bw, order, s.DepthFlag.Values()); err != nil {
			return err
		}
	}
	for _, s := range m.Surfaces {
		if err := writeFlags(bw, order, s.JumpFlag.Values()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a native-order VM model file. The file handle is scoped
// to this call.
func (m *Model) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Write(f, NativeOrder); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFloats(w io.Writer, order binary.ByteOrder, v []float64) error {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	if err := binary.Write(w, order, out); err != nil {
		return fmt.Errorf("vm: writing model: %w", err)
	}
	return nil
}

func writeFlags(w io.Writer, order binary.ByteOrder, v []int32) error {
	out := make([]int32, len(v))
	for i, f := range v {
		out[i] = f + 1 // back to the solver's 1-based convention
	}
	if err := binary.Write(w, order, out); err != nil {
		return fmt.Errorf("vm: writing model: %w", err)
	}
	return nil
}
