package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/observability"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract candidate details from one CV",
	Long: "Extracts name, email, phone, GitHub and LinkedIn profiles and skills from a PDF CV and " +
		"writes the result as JSON. When extraction fails or times out the result is derived from the filename. " +
		"An empty file is an error.",
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractOutFile     string
	extractVerbose     bool
	extractInteractive bool
)

// prompter is replaced in tests.
var prompter fieldPrompter = terminalPrompter{}

func init() {
	extractCmd.Flags().StringVarP(&extractOutFile, "out", "o", "", "Path to write the result JSON (default stdout)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print document metadata, the result and a text quality report")
	extractCmd.Flags().BoolVarP(&extractInteractive, "interactive", "i", false, "Prompt for fields the extractor could not find")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	outcome := pipeline.Run(cmd.Context(), newExtractor(), doc, appConfig.Extraction.Timeout)
	if errors.Is(outcome.Err, ingestion.ErrEmptyDocument) {
		return fmt.Errorf("%s: %w", doc.Filename, outcome.Err)
	}
	if outcome.FellBack {
		appLogger.Warn("extraction failed, using filename fallback",
			zap.String("filename", doc.Filename),
			zap.Error(outcome.Err))
	}
	result := outcome.Result

	if extractVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		raw, stats, decodeErr := ingestion.NewDecoder().Decode(doc.Data)
		printer.PrintDocumentMetadata(ingestion.NewMetadata(doc.Data, doc.Filename).WithStats(stats))
		if decodeErr == nil {
			report := ranking.AnalyzeQuality(ingestion.NormalizeText(raw))
			printer.PrintQualityReport(&report)
		}
		printer.PrintExtractionResult(result)
	}

	if extractInteractive {
		if err := reviewResult(result, prompter); err != nil {
			return fmt.Errorf("interactive review aborted: %w", err)
		}
	}

	return writeJSON(cmd, extractOutFile, result)
}
