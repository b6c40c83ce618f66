package rayfan

import "fmt"

// ReadingError reports a malformed ray archive: a record header that implies
// more data than the file holds, or a nonsensical count or size field.
type ReadingError struct {
	Offset int    // byte offset of the offending record
	Msg    string
	Err    error
}

func (e *ReadingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rayfan: bad archive at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("rayfan: bad archive at offset %d: %s", e.Offset, e.Msg)
}

func (e *ReadingError) Unwrap() error { return e.Err }
