package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/export"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/observability"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract and score every CV in a directory",
	Long: "Processes every .pdf file in a directory concurrently, optionally scoring each candidate " +
		"against mandatory and preferred skills, and writes the results as JSON and an optional Excel report.",
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchOutFile     string
	batchXLSXFile    string
	batchConcurrency int
	batchTitle       string
	batchMandatory   []string
	batchPreferred   []string
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutFile, "out", "o", "", "Path to write the results JSON (default stdout)")
	batchCmd.Flags().StringVar(&batchXLSXFile, "xlsx", "", "Path to write an Excel report")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Maximum concurrent extractions (default from config)")
	batchCmd.Flags().StringVar(&batchTitle, "title", "", "Job title shown in the report")
	batchCmd.Flags().StringSliceVar(&batchMandatory, "mandatory", nil, "Comma-separated mandatory skills")
	batchCmd.Flags().StringSliceVar(&batchPreferred, "preferred", nil, "Comma-separated preferred skills")

	rootCmd.AddCommand(batchCmd)
}

// batchRecord is the JSON form of one batch outcome.
type batchRecord struct {
	Filename string                  `json:"filename"`
	Result   *types.ExtractionResult `json:"result"`
	Match    *types.MatchResult      `json:"match,omitempty"`
	FellBack bool                    `json:"fell_back"`
	Error    string                  `json:"error,omitempty"`
}

// batchReport is the JSON document written by the batch command.
type batchReport struct {
	Requirements *types.JobRequirements `json:"requirements,omitempty"`
	Summary      pipeline.BatchSummary  `json:"summary"`
	Candidates   []batchRecord          `json:"candidates"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	req, err := requirementsFromFlags(batchTitle, batchMandatory, batchPreferred)
	if err != nil {
		return err
	}

	docs, err := pipeline.LoadDocuments(args[0])
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no PDF files found in %s", args[0])
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Extraction.Concurrency
	}

	appLogger.Info("starting batch",
		zap.String("dir", args[0]),
		zap.Int("documents", len(docs)),
		zap.Int("concurrency", concurrency))

	outcomes, err := pipeline.RunBatch(cmd.Context(), newExtractor(), docs, pipeline.BatchOptions{
		Concurrency:  concurrency,
		Timeout:      appConfig.Extraction.Timeout,
		Requirements: req,
		Scorer:       ranking.NewScorer(appConfig.Ranking.AcceptThreshold),
		OnProgress: func(event pipeline.ProgressEvent) {
			appLogger.Debug(event.Message,
				zap.String("step", event.Step),
				zap.String("category", event.Category),
				zap.Int("index", event.Index),
				zap.Int("total", event.Total))
		},
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(outcomes)

	if batchXLSXFile != "" {
		path, err := export.ExportToExcel(outcomes, req, batchXLSXFile)
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		appLogger.Info("wrote excel report", zap.String("path", path))
	}

	report := batchReport{
		Requirements: req,
		Summary:      pipeline.Summarize(outcomes),
		Candidates:   make([]batchRecord, len(outcomes)),
	}
	for i, o := range outcomes {
		report.Candidates[i] = batchRecord{
			Filename: o.Filename,
			Result:   o.Result,
			Match:    o.Match,
			FellBack: o.FellBack,
			Error:    o.Error(),
		}
	}

	return writeJSON(cmd, batchOutFile, report)
}
