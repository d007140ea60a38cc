package extraction

import "fmt"

// Extraction stages reported by ExtractionError.
const (
	StageDecode = "decode"
	StageReader = "reader"
)

// ExtractionError reports the stage at which a document could not be processed.
type ExtractionError struct {
	Stage    string
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("extraction failed at %s for %s: %v", e.Stage, e.Filename, e.Cause)
	}
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
