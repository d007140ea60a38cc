package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/observability"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <file>",
	Short: "Report on the writing quality of a CV",
	Long:  "Scores the text of a PDF or plain-text CV on completeness, information density and formatting rules.",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuality,
}

var (
	qualityOutFile string
	qualityVerbose bool
)

func init() {
	qualityCmd.Flags().StringVarP(&qualityOutFile, "out", "o", "", "Path to write the report JSON (default stdout)")
	qualityCmd.Flags().BoolVarP(&qualityVerbose, "verbose", "v", false, "Print a formatted report")

	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	text, err := readCVText(args[0])
	if err != nil {
		return err
	}

	report := ranking.AnalyzeQuality(text)
	if qualityVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintQualityReport(&report)
	}
	return writeJSON(cmd, qualityOutFile, report)
}

// readCVText returns the normalized text of a PDF, or the contents of any other file.
func readCVText(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	doc, err := pipeline.LoadDocument(path)
	if err != nil {
		return "", err
	}
	raw, _, err := ingestion.NewDecoder(ingestion.WithDecoderLogger(appLogger)).Decode(doc.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", doc.Filename, err)
	}
	return ingestion.NormalizeText(raw), nil
}
