package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/extraction"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// newExtractor builds the extractor configured for this run.
func newExtractor() *extraction.Extractor {
	opts := []extraction.Option{extraction.WithLogger(appLogger)}
	if appConfig != nil && appConfig.Extraction.LibraryFallback {
		opts = append(opts, extraction.WithFallbackReader(ingestion.NewLibraryReader()))
	}
	return extraction.New(opts...)
}

// writeJSON writes v as indented JSON to path, or to the command's stdout when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", path)
	return nil
}

// requirementsFromFlags returns nil when neither list was given.
func requirementsFromFlags(title string, mandatory, preferred []string) (*types.JobRequirements, error) {
	mandatory = trimAll(mandatory)
	preferred = trimAll(preferred)
	if len(mandatory) == 0 && len(preferred) == 0 {
		return nil, nil
	}

	req := &types.JobRequirements{
		Title:           title,
		MandatorySkills: mandatory,
		PreferredSkills: preferred,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirements: %w", err)
	}
	return req, nil
}

func trimAll(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
