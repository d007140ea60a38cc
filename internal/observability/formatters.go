// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/ingestion"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/skills"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocumentMetadata outputs what the decoder saw in the uploaded file.
func (p *Printer) PrintDocumentMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", orDash(meta.Filename)))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", meta.Size))
	sb.WriteString(fmt.Sprintf("SHA-256:  %.16s\n", meta.Hash))
	sb.WriteString(fmt.Sprintf("Streams:  %d", meta.Streams))
	if meta.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(" (%d skipped)", meta.Skipped))
	}
	sb.WriteString("\n")

	p.printBox("DOCUMENT", sb.String())
}

// PrintExtractionResult outputs a human-readable summary of an extracted candidate.
func (p *Printer) PrintExtractionResult(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", result.DisplayName()))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(result.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(result.Phone)))
	sb.WriteString(fmt.Sprintf("GitHub:   %s\n", orDash(result.Links.GitHub)))
	sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", orDash(result.Links.LinkedIn)))
	sb.WriteString("\n")

	if len(result.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(result.Skills)))
		writeList(&sb, result.Skills)
		writeCategories(&sb, result.Skills)
	} else {
		sb.WriteString("Skills: none found\n")
	}

	if missing := result.MissingFields(); len(missing) > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Verify manually: %s\n", strings.Join(missing, ", ")))
	}

	p.printBox("EXTRACTED CANDIDATE", sb.String())
}

// PrintMatchResult outputs the score of a candidate against job requirements.
func (p *Printer) PrintMatchResult(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %.2f\n", match.Score))
	sb.WriteString(fmt.Sprintf("Decision: %s\n", match.Decision))

	if len(match.MatchedMandatory) > 0 {
		sb.WriteString("\nMatched Mandatory:\n")
		writeList(&sb, match.MatchedMandatory)
	}
	if len(match.MissingMandatory) > 0 {
		sb.WriteString("\nMissing Mandatory:\n")
		writeList(&sb, match.MissingMandatory)
	}
	if len(match.MatchedPreferred) > 0 {
		sb.WriteString("\nMatched Preferred:\n")
		writeList(&sb, match.MatchedPreferred)
	}

	p.printBox("MATCH RESULT", sb.String())
}

// PrintQualityReport outputs CV text quality metrics and every rule that fired.
func (p *Printer) PrintQualityReport(report *types.QualityReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:            %.2f (%s)\n", report.Overall, report.Rating))
	sb.WriteString(fmt.Sprintf("Completeness:       %.2f\n", report.Completeness))
	sb.WriteString(fmt.Sprintf("Writing Quality:    %.2f\n", report.WritingQuality))
	sb.WriteString(fmt.Sprintf("Information Density: %.2f\n", report.InformationDensity))
	sb.WriteString(fmt.Sprintf("Format Consistency: %.2f\n", report.FormatConsistency))

	if len(report.Findings) > 0 {
		sb.WriteString("\nRules:\n")
		for _, f := range report.Findings {
			sb.WriteString(fmt.Sprintf("  %-20s %+7.2f  %s\n", f.Rule, f.Points, f.Detail))
		}
	}

	p.printBox("CV QUALITY", sb.String())
}

// PrintBatchSummary outputs one line per processed document followed by totals.
func (p *Printer) PrintBatchSummary(outcomes []pipeline.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for _, o := range outcomes {
		status := "ok"
		switch {
		case o.FellBack:
			status = "fallback"
		case o.Match != nil:
			status = fmt.Sprintf("%.0f %s", o.Match.Score, o.Match.Decision)
		}
		name := types.UnknownCandidateLabel
		if o.Result != nil {
			name = o.Result.DisplayName()
		}
		sb.WriteString(fmt.Sprintf("%-20s %-20s %s\n", truncate(o.Filename, 20), truncate(name, 20), status))
	}

	s := pipeline.Summarize(outcomes)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total: %d  Accepted: %d  Rejected: %d  Fallbacks: %d\n",
		s.Total, s.Accepted, s.Rejected, s.FellBack))

	p.printBox("BATCH RESULTS", sb.String())
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// categoryOrder fixes the order categories are listed in.
var categoryOrder = []skills.Category{
	skills.CategoryLanguages,
	skills.CategoryTools,
	skills.CategoryTechnical,
	skills.CategoryDomain,
	skills.CategorySoftSkills,
}

func writeCategories(sb *strings.Builder, skillList []string) {
	groups := skills.GroupByCategory(skillList)
	sb.WriteString("By category:\n")
	for _, c := range categoryOrder {
		if items := groups[c]; len(items) > 0 {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", c, strings.Join(items, ", ")))
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
