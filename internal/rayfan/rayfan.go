// Package rayfan reads the ray-path archives produced by the external
// raytracing solver and derives traveltime fit statistics from them.
//
// An archive groups rays by their shared start point (one "rayfan" per
// instrument). Records are variable length and strictly sequential; there is
// no index table, so reading is all-or-nothing.
package rayfan

import (
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/vmtomo/internal/binio"
	"github.com/banshee-data/vmtomo/internal/vm"
)

// Rayfan is the bundle of rays traced from one start point, with the picked
// and computed traveltimes for each.
type Rayfan struct {
	StartPointID     int32
	StaticCorrection float64 // seconds, archive version > 1 only

	EndPointIDs []int32
	EventIDs    []int32
	EventSubIDs []int32
	PickTimes   []float64
	TravelTimes []float64
	PickErrors  []float64
	Paths       [][]vm.Point3
}

// NRays returns the number of rays in the fan.
func (f *Rayfan) NRays() int { return len(f.TravelTimes) }

// Group is a parsed ray archive.
type Group struct {
	Version int
	Rayfans []*Rayfan
}

// NRays returns the total ray count across all fans.
func (g *Group) NRays() int {
	n := 0
	for _, f := range g.Rayfans {
		n += f.NRays()
	}
	return n
}

// The archive layout:
//
//	int32 head               count, or -version when negative
//	int32 count              only when head < 0
//	per fan:
//	  int32   start_point_id
//	  int32   nrays
//	  int32   nsize          total path points across the fan's rays
//	  float32 static         version > 1 only
//	  int32   end_point_id[nrays]
//	  int32   event_id[nrays]
//	  int32   event_subid[nrays]
//	  int32   path_len[nrays]
//	  float32 pick_time[nrays]
//	  float32 travel_time[nrays]
//	  float32 pick_error[nrays]
//	  float32 (x, y, z)[nsize]
//
// nsize doubles as an up-front sanity check: a fan header whose implied byte
// count exceeds the remaining buffer fails before any arrays are read.

// Read parses a complete ray archive from r.
func Read(rd io.Reader) (*Group, error) {
	buf, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("rayfan: reading archive: %w", err)
	}
	return decode(buf)
}

// ReadFile reads a ray archive file. The file handle is scoped to this call.
func ReadFile(path string) (*Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func decode(buf []byte) (*Group, error) {
	r := binio.NewReader(buf, vm.NativeOrder)

	head, err := r.Int32()
	if err != nil {
		return nil, shortf(r, err, "archive header")
	}
	g := &Group{Version: 1}
	count := int(head)
	if head < 0 {
		g.Version = int(-head)
		c, err := r.Int32()
		if err != nil {
			return nil, shortf(r, err, "rayfan count")
		}
		count = int(c)
	}
	if count < 0 {
		return nil, &ReadingError{Offset: r.Offset(),
			Msg: fmt.Sprintf("negative rayfan count %d", count)}
	}

	for i := 0; i < count; i++ {
		f, err := decodeFan(r, g.Version)
		if err != nil {
			return nil, err
		}
		g.Rayfans = append(g.Rayfans, f)
	}
	return g, nil
}

func decodeFan(r *binio.Reader, version int) (*Rayfan, error) {
	at := r.Offset()
	var head [3]int32
	if err := r.Int32s(head[:]); err != nil {
		return nil, shortf(r, err, "rayfan record header")
	}
	nrays, nsize := int(head[1]), int(head[2])
	if nrays <= 0 || nsize <= 0 {
		return nil, &ReadingError{Offset: at,
			Msg: fmt.Sprintf("implausible rayfan sizes nrays=%d nsize=%d", nrays, nsize)}
	}
	needed := 4 * (7*nrays + 3*nsize)
	if version > 1 {
		needed += 4
	}
	if r.Remaining() < needed {
		return nil, &ReadingError{Offset: at,
			Msg: fmt.Sprintf("rayfan record needs %d bytes, archive has %d left",
				needed, r.Remaining())}
	}

	f := &Rayfan{
		StartPointID: head[0],
		EndPointIDs:  make([]int32, nrays),
		EventIDs:     make([]int32, nrays),
		EventSubIDs:  make([]int32, nrays),
		PickTimes:    make([]float64, nrays),
		TravelTimes:  make([]float64, nrays),
		PickErrors:   make([]float64, nrays),
	}
	if version > 1 {
		static, err := r.Float32()
		if err != nil {
			return nil, shortf(r, err, "static correction")
		}
		f.StaticCorrection = float64(static)
	}
	pathLens := make([]int32, nrays)
	for _, dst := range [][]int32{f.EndPointIDs, f.EventIDs, f.EventSubIDs, pathLens} {
		if err := r.Int32s(dst); err != nil {
			return nil, shortf(r, err, "rayfan id arrays")
		}
	}
	for _, dst := range [][]float64{f.PickTimes, f.TravelTimes, f.PickErrors} {
		if err := r.Float32s(dst); err != nil {
			return nil, shortf(r, err, "rayfan time arrays")
		}
	}

	// the declared path lengths must fit the bytes that are actually left;
	// checking up front keeps a corrupt length from driving a huge allocation
	var npoints int64
	for i, n := range pathLens {
		if n < 0 {
			return nil, &ReadingError{Offset: r.Offset(),
				Msg: fmt.Sprintf("negative path length %d for ray %d", n, i)}
		}
		npoints += int64(n)
	}
	if 12*npoints > int64(r.Remaining()) {
		return nil, &ReadingError{Offset: r.Offset(),
			Msg: fmt.Sprintf("path blocks need %d bytes, archive has %d left",
				12*npoints, r.Remaining())}
	}

	f.Paths = make([][]vm.Point3, nrays)
	var xyz [3]float64
	for i, n := range pathLens {
		path := make([]vm.Point3, n)
		for j := range path {
			if err := r.Float32s(xyz[:]); err != nil {
				return nil, shortf(r, err, "ray path points")
			}
			path[j] = vm.Point3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		}
		f.Paths[i] = path
	}
	return f, nil
}

func shortf(r *binio.Reader, err error, what string) error {
	return &ReadingError{Offset: r.Offset(), Msg: "truncated " + what, Err: err}
}
