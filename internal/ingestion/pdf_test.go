package ingestion

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pdfObject renders one indirect object carrying a content stream.
func pdfObject(num int, dict string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n", num, dict, len(body))
	buf.Write(body)
	buf.WriteString("\nendstream\nendobj\n")
	return buf.Bytes()
}

func buildPDF(objects ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	for _, obj := range objects {
		buf.Write(obj)
	}
	buf.WriteString("trailer\n<< /Size 3 >>\n%%EOF\n")
	return buf.Bytes()
}

func deflate(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func makePDF() []byte {
	return []byte(`%PDF-1.1
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 300 300] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj
4 0 obj << /Length 70 >> stream
BT
/F1 12 Tf
40 250 Td
(Jane Doe) Tj
0 -14 Td
(jane.doe@acme.io) Tj
ET
endstream endobj
5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj
trailer << /Root 1 0 R /Size 6 >>
%%EOF`)
}

func TestDecodePDF_UncompressedStream(t *testing.T) {
	text, err := DecodePDF(makePDF())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe jane.doe@acme.io", text)
}

func TestDecodePDF_FlateStream(t *testing.T) {
	data := buildPDF(pdfObject(1, "/Filter /FlateDecode", deflate(t, "BT /F1 12 Tf (World) Tj ET")))

	text, err := DecodePDF(data)
	require.NoError(t, err)
	assert.Equal(t, "World", text)
}

func TestDecodePDF_FlateFilterArray(t *testing.T) {
	data := buildPDF(pdfObject(1, "/Filter [/FlateDecode]", deflate(t, "BT (Array filter) Tj ET")))

	text, err := DecodePDF(data)
	require.NoError(t, err)
	assert.Equal(t, "Array filter", text)
}

func TestDecode_CorruptedStreamIsSkipped(t *testing.T) {
	data := buildPDF(
		pdfObject(1, "/Filter /FlateDecode", []byte("this is not zlib data")),
		pdfObject(2, "", []byte("BT (Hello) Tj ET")),
	)

	text, stats, err := NewDecoder(WithDecoderLogger(zap.NewNop())).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
	assert.Equal(t, DecodeStats{Streams: 2, Compressed: 1, Skipped: 1, Runs: 1}, stats)
}

func TestDecode_TruncatedStreamIsSkipped(t *testing.T) {
	compressed := deflate(t, strings.Repeat("BT (Lost text) Tj ET\n", 50))
	data := buildPDF(
		pdfObject(1, "/Filter /FlateDecode", compressed[:len(compressed)/2]),
		pdfObject(2, "/Filter /FlateDecode", deflate(t, "(Kept) Tj")),
	)

	text, stats, err := NewDecoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Kept", text)
	assert.Equal(t, 1, stats.Skipped)
}

func TestDecode_InflateLimit(t *testing.T) {
	data := buildPDF(pdfObject(1, "/Filter /FlateDecode", deflate(t, "BT (Too long for the limit) Tj ET")))

	text, stats, err := NewDecoder(WithMaxInflatedBytes(8)).Decode(data)
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, 1, stats.Skipped)
}

func TestDecodePDF_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := DecodePDF(tt.data)
			assert.Empty(t, text)
			assert.True(t, errors.Is(err, ErrEmptyDocument))
		})
	}
}

func TestDecodePDF_NoStreams(t *testing.T) {
	text, err := DecodePDF([]byte("%PDF-1.4\nnothing to see here\n%%EOF"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextRuns(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			name:   "single Tj",
			stream: "BT (Hello) Tj ET",
			want:   []string{"Hello"},
		},
		{
			name:   "TJ array drops kerning",
			stream: "BT [(Soft) -250 (ware) 120 (Engineer)] TJ ET",
			want:   []string{"Soft", "ware", "Engineer"},
		},
		{
			name:   "encounter order across operators",
			stream: "(A) Tj [(B)] TJ (C) Tj",
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "escaped parentheses stay escaped",
			stream: `(\(555\) 123-4567) Tj`,
			want:   []string{`\(555\) 123-4567`},
		},
		{
			name:   "balanced parentheses inside a literal",
			stream: "(a(b)c) Tj [(x(y)z) -20 (w)] TJ",
			want:   []string{"a(b)c", "x(y)z", "w"},
		},
		{
			name:   "empty literals dropped",
			stream: "() Tj [() (x)] TJ",
			want:   []string{"x"},
		},
		{
			name:   "whitespace before operator",
			stream: "(spaced)\n  Tj",
			want:   []string{"spaced"},
		},
		{
			name:   "no text operators",
			stream: "0 0 m 100 100 l S",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textRuns([]byte(tt.stream)))
		})
	}
}

func TestTextRuns_Latin1Bytes(t *testing.T) {
	runs := textRuns([]byte("(Jos\xe9) Tj"))
	require.Len(t, runs, 1)
	assert.Equal(t, "José", runs[0])
}

func TestLibraryReader_EmptyInput(t *testing.T) {
	_, err := NewLibraryReader().ReadText(nil)
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestLibraryReader_Garbage(t *testing.T) {
	text, err := NewLibraryReader().ReadText([]byte("definitely not a pdf"))
	assert.Empty(t, text)

	var readerErr *ReaderError
	assert.True(t, errors.As(err, &readerErr))
}

func TestStreamError(t *testing.T) {
	cause := errors.New("zlib: invalid header")
	err := &StreamError{Index: 2, Offset: 120, Cause: cause}

	assert.Equal(t, "stream 2 at offset 120: zlib: invalid header", err.Error())
	assert.True(t, errors.Is(err, cause))
}
