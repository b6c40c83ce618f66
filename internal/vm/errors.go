package vm

import "fmt"

// FormatError reports a malformed or truncated VM model binary: fewer bytes
// remained than the header implied, or the header itself was unreadable.
type FormatError struct {
	Offset int    // byte offset where parsing stopped
	Msg    string // what was expected
	Err    error  // underlying cause, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vm: bad model file at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("vm: bad model file at offset %d: %s", e.Offset, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// DomainError reports an operation whose preconditions the model does not
// satisfy: a layer index outside [0, nr], or a 3D model where a 2D one is
// required.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "vm: " + e.Msg }

func domainErrorf(format string, args ...any) *DomainError {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}
