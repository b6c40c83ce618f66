// Package binio provides a length-checked cursor over an in-memory byte
// buffer for parsing fixed-width binary records. Consumers always know how
// many bytes remain, so record-size sanity checks stay mechanical.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShort reports that a read would run past the end of the buffer.
var ErrShort = errors.New("short buffer")

// Reader walks a byte buffer front to back, decoding fixed-width fields in
// the configured byte order. It never reads past the buffer: any overrun
// returns an error wrapping ErrShort and leaves the offset unchanged.
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// Offset returns the current byte offset.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrShort, n, r.off, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Int32 decodes one 32-bit signed integer.
func (r *Reader) Int32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(b)), nil
}

// Float32 decodes one 32-bit IEEE float.
func (r *Reader) Float32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(r.order.Uint32(b)), nil
}

// Int32s fills dst with consecutive 32-bit integers.
func (r *Reader) Int32s(dst []int32) error {
	b, err := r.take(4 * len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = int32(r.order.Uint32(b[4*i:]))
	}
	return nil
}

// Float32s fills dst with consecutive 32-bit floats widened to float64.
func (r *Reader) Float32s(dst []float64) error {
	b, err := r.take(4 * len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = float64(math.Float32frombits(r.order.Uint32(b[4*i:])))
	}
	return nil
}
