package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LibraryReader extracts page text with a full PDF parser. It understands
// cross-reference tables, object streams and font encodings that the byte-level
// Decoder ignores, but it rejects files whose structure is damaged.
type LibraryReader struct{}

// NewLibraryReader creates a LibraryReader.
func NewLibraryReader() *LibraryReader {
	return &LibraryReader{}
}

// ReadText returns the plain text of every page, one page per paragraph.
// Parser panics on malformed input are returned as a ReaderError.
func (r *LibraryReader) ReadText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ReaderError{Message: "parser panic", Cause: fmt.Errorf("%v", rec)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReaderError{Message: "open", Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ReaderError{Message: fmt.Sprintf("page %d", i), Cause: err}
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
