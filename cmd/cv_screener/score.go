package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/observability"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ranking"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an extraction result against job requirements",
	Long:  "Reads an extraction result JSON file and scores its skills against mandatory and preferred skills.",
	RunE:  runScore,
}

var (
	scoreResultFile string
	scoreOutFile    string
	scoreVerbose    bool
	scoreMandatory  []string
	scorePreferred  []string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResultFile, "result", "r", "", "Path to an extraction result JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutFile, "out", "o", "", "Path to write the match JSON (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a formatted match summary")
	scoreCmd.Flags().StringSliceVar(&scoreMandatory, "mandatory", nil, "Comma-separated mandatory skills")
	scoreCmd.Flags().StringSliceVar(&scorePreferred, "preferred", nil, "Comma-separated preferred skills")

	if err := scoreCmd.MarkFlagRequired("result"); err != nil {
		panic(fmt.Sprintf("failed to mark result flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	req, err := requirementsFromFlags("", scoreMandatory, scorePreferred)
	if err != nil {
		return err
	}
	if req == nil {
		return errors.New("at least one of --mandatory or --preferred is required")
	}

	data, err := os.ReadFile(scoreResultFile)
	if err != nil {
		return fmt.Errorf("failed to read result file: %w", err)
	}
	var result types.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse result file: %w", err)
	}

	match := ranking.NewScorer(appConfig.Ranking.AcceptThreshold).Score(result.Skills, *req)

	if scoreVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintExtractionResult(&result)
		printer.PrintMatchResult(&match)
	}

	return writeJSON(cmd, scoreOutFile, match)
}
