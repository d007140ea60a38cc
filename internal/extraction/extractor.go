package extraction

import (
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
	"go.uber.org/zap"
)

// TextReader extracts text from a PDF with a full parser. *ingestion.LibraryReader implements it.
type TextReader interface {
	ReadText(data []byte) (string, error)
}

// Extractor turns uploaded CV documents into ExtractionResults.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	decoder  *ingestion.Decoder
	fallback TextReader
	logger   *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for the extractor and its decoder.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFallbackReader enables a second text source, consulted when the content-stream
// decoder recovers no text at all.
func WithFallbackReader(r TextReader) Option {
	return func(e *Extractor) {
		e.fallback = r
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.decoder = ingestion.NewDecoder(ingestion.WithDecoderLogger(e.logger))
	return e
}

// Extract decodes doc and extracts the candidate fields from its text.
//
// An empty document fails with an error wrapping ingestion.ErrEmptyDocument. Any other
// input yields a result, possibly with every field absent and the name set to
// types.UnknownName.
func (e *Extractor) Extract(doc types.Document) (*types.ExtractionResult, error) {
	if doc.IsEmpty() {
		return nil, &ExtractionError{Stage: StageDecode, Filename: doc.Filename, Cause: ingestion.ErrEmptyDocument}
	}

	raw, stats, err := e.decoder.Decode(doc.Data)
	if err != nil {
		return nil, &ExtractionError{Stage: StageDecode, Filename: doc.Filename, Cause: err}
	}
	text := ingestion.NormalizeText(raw)

	if text == "" && e.fallback != nil {
		text = e.readFallback(doc)
	}

	meta := ingestion.NewMetadata(doc.Data, doc.Filename).WithStats(stats)
	e.logger.Debug("document decoded",
		zap.String("filename", meta.Filename),
		zap.String("hash", meta.Hash),
		zap.Int("size", meta.Size),
		zap.Int("streams", meta.Streams),
		zap.Int("skipped_streams", meta.Skipped),
		zap.Int("text_length", len(text)))

	return e.ExtractText(text, doc.Filename), nil
}

// ExtractText extracts the candidate fields from already clean text.
func (e *Extractor) ExtractText(text, filename string) *types.ExtractionResult {
	email := ExtractEmail(text)
	result := &types.ExtractionResult{
		Name:   ResolveName(filename, text, email),
		Email:  email,
		Phone:  ExtractPhone(text),
		Links:  ExtractLinks(text),
		Skills: ExtractSkills(text),
	}

	e.logger.Debug("extraction complete",
		zap.String("filename", filename),
		zap.String("name", result.Name),
		zap.Int("skills", len(result.Skills)),
		zap.Strings("missing", result.MissingFields()))

	return result
}

func (e *Extractor) readFallback(doc types.Document) string {
	text, err := e.fallback.ReadText(doc.Data)
	if err != nil {
		e.logger.Warn("fallback reader failed",
			zap.String("filename", doc.Filename),
			zap.Error(&ExtractionError{Stage: StageReader, Filename: doc.Filename, Cause: err}))
		return ""
	}
	return ingestion.CleanText(text)
}

// FallbackResult identifies a candidate from the filename alone. It is used when a
// full extraction attempt was abandoned.
func FallbackResult(filename string) *types.ExtractionResult {
	name := NameFromFilename(filename)
	if name == "" {
		name = types.UnknownName
	}
	return &types.ExtractionResult{Name: name, Skills: []string{}}
}
