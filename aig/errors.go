package aig

import "fmt"

// ParseError reports a malformed AIGER stream, naming the byte offset at
// which decoding failed (spec §4.4).
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("aig: parse error at byte %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("aig: parse error: %s", e.Message)
}
