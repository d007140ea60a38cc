package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when the input buffer is nil or zero-length.
// Callers use it to tell "no file" apart from "unparseable file".
var ErrEmptyDocument = errors.New("empty document")

// StreamError describes one content stream that could not be decoded.
type StreamError struct {
	Index  int
	Offset int
	Cause  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %d at offset %d: %v", e.Index, e.Offset, e.Cause)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// ReaderError wraps failures of the library-backed PDF reader.
type ReaderError struct {
	Message string
	Cause   error
}

func (e *ReaderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf reader: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf reader: %s", e.Message)
}

func (e *ReaderError) Unwrap() error {
	return e.Cause
}
