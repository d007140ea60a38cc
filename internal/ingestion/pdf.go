// Package ingestion turns raw uploaded CV bytes into clean text.
//
// The PDF decoder works directly on the byte buffer: it locates content streams,
// inflates FlateDecode streams and collects the literal strings drawn by the Tj and
// TJ text operators. It does not interpret fonts, encodings or page layout.
package ingestion

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxInflatedBytes bounds the output of a single inflated stream.
const DefaultMaxInflatedBytes = 16 << 20

var (
	// streamPattern matches "N G obj <header> stream<EOL><data><EOL>endstream".
	// Group 1 is the object header, group 2 the stream bytes.
	streamPattern = regexp.MustCompile(`(\d+\s+\d+\s+obj[\s\S]*?)stream(?:\r\n|\r|\n)?([\s\S]*?)(?:\r\n|\r|\n)?endstream`)

	// flatePattern detects the FlateDecode filter on an object header.
	flatePattern = regexp.MustCompile(`/Filter\s*(?:/FlateDecode|\[\s*/FlateDecode)`)

	// textOperatorPattern matches "(literal) Tj" (group 1) or "[array] TJ" (group 2)
	// so both idioms are returned in encounter order.
	textOperatorPattern = regexp.MustCompile(`\((` + literalBody + `)\)\s*Tj|\[((?:[^\[\]\\]|\\[\s\S])*)\]\s*TJ`)

	// literalPattern matches one parenthesized literal inside a TJ array.
	literalPattern = regexp.MustCompile(`\((` + literalBody + `)\)`)
)

// literalBody matches the inside of a string literal: escapes plus at most one level of
// balanced unescaped parentheses. Literals nested deeper are not recovered.
const literalBody = `(?:[^()\\]|\\[\s\S]|\((?:[^()\\]|\\[\s\S])*\))*`

// DecodeStats summarizes one decode call.
type DecodeStats struct {
	Streams    int
	Compressed int
	Skipped    int
	Runs       int
}

// Decoder extracts raw text runs from PDF content streams.
// A Decoder holds no per-call state and is safe for concurrent use.
type Decoder struct {
	logger      *zap.Logger
	maxInflated int64
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderLogger sets the logger used for skipped-stream warnings.
func WithDecoderLogger(logger *zap.Logger) DecoderOption {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMaxInflatedBytes bounds how much a single stream may inflate to.
func WithMaxInflatedBytes(n int64) DecoderOption {
	return func(d *Decoder) {
		if n > 0 {
			d.maxInflated = n
		}
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		logger:      zap.NewNop(),
		maxInflated: DefaultMaxInflatedBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodePDF is a convenience wrapper around a default Decoder.
func DecodePDF(data []byte) (string, error) {
	text, _, err := NewDecoder().Decode(data)
	return text, err
}

// Decode returns the literal text runs of every content stream, joined by a single
// space, in the order the streams appear in data. The returned text still contains
// PDF string escapes; see NormalizeText.
//
// Malformed streams are logged and skipped. Only an empty buffer is an error.
func (d *Decoder) Decode(data []byte) (string, DecodeStats, error) {
	var stats DecodeStats
	if len(data) == 0 {
		return "", stats, ErrEmptyDocument
	}

	var runs []string
	for _, loc := range streamPattern.FindAllSubmatchIndex(data, -1) {
		stats.Streams++
		header := data[loc[2]:loc[3]]
		body := data[loc[4]:loc[5]]

		if flatePattern.Match(header) {
			stats.Compressed++
			inflated, err := d.inflate(body)
			if err != nil {
				stats.Skipped++
				d.logger.Warn("skipping undecodable stream",
					zap.Error(&StreamError{Index: stats.Streams, Offset: loc[0], Cause: err}))
				continue
			}
			body = inflated
		}

		found := textRuns(body)
		stats.Runs += len(found)
		runs = append(runs, found...)
	}

	d.logger.Debug("decoded pdf content streams",
		zap.Int("bytes", len(data)),
		zap.Int("streams", stats.Streams),
		zap.Int("compressed", stats.Compressed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("runs", stats.Runs))

	return strings.Join(runs, " "), stats, nil
}

// inflate runs zlib decompression, refusing output larger than the configured bound.
func (d *Decoder) inflate(body []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("flate header: %w", err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(io.LimitReader(zr, d.maxInflated+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if int64(len(out)) > d.maxInflated {
		return nil, fmt.Errorf("inflated stream exceeds %d bytes", d.maxInflated)
	}
	return out, nil
}

// textRuns pulls the Tj literals and TJ array literals out of a decoded content stream.
// Kerning numbers between TJ literals are discarded; empty literals are dropped.
func textRuns(stream []byte) []string {
	var runs []string
	for _, m := range textOperatorPattern.FindAllSubmatchIndex(stream, -1) {
		switch {
		case m[2] >= 0:
			if m[3] > m[2] {
				runs = append(runs, latin1(stream[m[2]:m[3]]))
			}
		case m[4] >= 0:
			array := stream[m[4]:m[5]]
			for _, lit := range literalPattern.FindAllSubmatch(array, -1) {
				if len(lit[1]) > 0 {
					runs = append(runs, latin1(lit[1]))
				}
			}
		}
	}
	return runs
}

// latin1 maps every byte to the rune of the same value.
func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
