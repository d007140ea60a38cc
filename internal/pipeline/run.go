// Package pipeline orchestrates CV extraction runs: single documents with a timeout
// and filename fallback, and bounded concurrent batches with progress reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/extraction"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// Step names reported in ProgressEvent.Step
const (
	StepExtract  = "extract"
	StepFallback = "fallback"
	StepScore    = "score"
	StepComplete = "complete"
)

// Step categories reported in ProgressEvent.Category
const (
	CategoryExtraction = "extraction"
	CategoryRanking    = "ranking"
)

// DefaultConcurrency is used when BatchOptions.Concurrency is not positive.
const DefaultConcurrency = 4

// ProgressEvent represents a progress update during a batch run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when batch progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// DocumentExtractor is the extraction entry point used by the pipeline.
type DocumentExtractor interface {
	Extract(doc types.Document) (*types.ExtractionResult, error)
}

// Outcome is the result of processing one document.
type Outcome struct {
	Filename string                  `json:"filename"`
	Result   *types.ExtractionResult `json:"result"`
	Match    *types.MatchResult      `json:"match,omitempty"`
	FellBack bool                    `json:"fell_back"`
	Err      error                   `json:"-"`
}

// Error returns the failure message, or "" for a clean extraction.
func (o Outcome) Error() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Run extracts one document. When the extraction fails, exceeds timeout or ctx is
// cancelled, the attempt is discarded and the outcome carries a filename-only result
// with FellBack set and Err describing the cause. A non-positive timeout disables the
// per-document deadline.
func Run(ctx context.Context, ex DocumentExtractor, doc types.Document, timeout time.Duration) Outcome {
	outcome := Outcome{Filename: doc.Filename}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type attempt struct {
		result *types.ExtractionResult
		err    error
	}
	// An abandoned extraction finishes in the background; its result is dropped.
	done := make(chan attempt, 1)
	go func() {
		result, err := ex.Extract(doc)
		done <- attempt{result: result, err: err}
	}()

	select {
	case a := <-done:
		if a.err == nil {
			outcome.Result = a.result
			return outcome
		}
		outcome.Err = a.err
	case <-ctx.Done():
		outcome.Err = &TimeoutError{Filename: doc.Filename, Cause: ctx.Err()}
	}

	outcome.Result = extraction.FallbackResult(doc.Filename)
	outcome.FellBack = true
	return outcome
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Concurrency  int
	Timeout      time.Duration
	Requirements *types.JobRequirements // optional; scores every outcome when set
	Scorer       *ranking.Scorer        // defaults to ranking.NewScorer(0)
	OnProgress   ProgressCallback
}

// RunBatch processes docs with at most opts.Concurrency extractions in flight.
// Outcomes are returned in input order. Per-document failures are recorded on their
// outcomes; the returned error is non-nil only when ctx ended before the batch finished.
func RunBatch(ctx context.Context, ex DocumentExtractor, docs []types.Document, opts BatchOptions) ([]Outcome, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = ranking.NewScorer(0)
	}

	var progressMu sync.Mutex
	emit := func(event ProgressEvent) {
		if opts.OnProgress == nil {
			return
		}
		event.Total = len(docs)
		progressMu.Lock()
		defer progressMu.Unlock()
		opts.OnProgress(event)
	}

	outcomes := make([]Outcome, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			emit(ProgressEvent{
				Step:     StepExtract,
				Category: CategoryExtraction,
				Message:  fmt.Sprintf("Extracting %s", doc.Filename),
				Filename: doc.Filename,
				Index:    i,
			})

			outcome := Run(gCtx, ex, doc, opts.Timeout)
			if outcome.FellBack {
				emit(ProgressEvent{
					Step:     StepFallback,
					Category: CategoryExtraction,
					Message:  fmt.Sprintf("Falling back to filename for %s: %v", doc.Filename, outcome.Err),
					Filename: doc.Filename,
					Index:    i,
				})
			}

			if opts.Requirements != nil {
				match := scorer.Score(outcome.Result.Skills, *opts.Requirements)
				outcome.Match = &match
				emit(ProgressEvent{
					Step:     StepScore,
					Category: CategoryRanking,
					Message:  fmt.Sprintf("%s scored %.2f (%s)", outcome.Result.DisplayName(), match.Score, match.Decision),
					Filename: doc.Filename,
					Index:    i,
					Content:  match,
				})
			}

			outcomes[i] = outcome
			return nil
		})
	}

	_ = g.Wait()

	emit(ProgressEvent{
		Step:     StepComplete,
		Category: CategoryExtraction,
		Message:  fmt.Sprintf("Processed %d documents", len(docs)),
		Index:    len(docs),
		Content:  Summarize(outcomes),
	})

	if err := ctx.Err(); err != nil {
		return outcomes, fmt.Errorf("batch interrupted: %w", err)
	}
	return outcomes, nil
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	FellBack int `json:"fell_back"`
	Empty    int `json:"empty"`
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) BatchSummary {
	summary := BatchSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.FellBack {
			summary.FellBack++
		}
		if errors.Is(o.Err, ingestion.ErrEmptyDocument) {
			summary.Empty++
		}
		if o.Match != nil {
			if o.Match.Accepted() {
				summary.Accepted++
			} else {
				summary.Rejected++
			}
		}
	}
	return summary
}
