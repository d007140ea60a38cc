package pipeline

import "fmt"

// TimeoutError reports an extraction abandoned because its deadline passed or the run was cancelled.
type TimeoutError struct {
	Filename string
	Cause    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("extraction of %q abandoned: %v", e.Filename, e.Cause)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// DocumentTooLargeError reports a file above the load size limit.
type DocumentTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *DocumentTooLargeError) Error() string {
	return fmt.Sprintf("document %s is %d bytes, limit is %d", e.Path, e.Size, e.Limit)
}
