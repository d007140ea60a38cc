// Package export writes batch screening results to spreadsheet reports.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/pipeline"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// Sheet names in the exported workbook.
const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Candidates"
)

var candidateHeaders = []string{
	"Rank", "File", "Name", "Email", "Phone", "GitHub", "LinkedIn",
	"Skills", "Score", "Decision", "Missing Mandatory", "Needs Review",
}

// Row fill colours by decision.
const (
	headerColor   = "4472C4"
	acceptedColor = "C6EFCE"
	rejectedColor = "FFC7CE"
	fallbackColor = "FFEB9C"
)

// ExportToExcel writes outcomes to an .xlsx file at outputPath, adding the extension
// when it is missing. It returns the path actually written.
func ExportToExcel(outcomes []pipeline.Outcome, req *types.JobRequirements, outputPath string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	out, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteWorkbook(out, outcomes, req); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return outputPath, nil
}

// WriteWorkbook renders the summary and candidate sheets to w.
func WriteWorkbook(w io.Writer, outcomes []pipeline.Outcome, req *types.JobRequirements) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, outcomes, req); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, RankOutcomes(outcomes)); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// RankOutcomes returns a copy of outcomes ordered by match score, best first.
// Unscored outcomes keep their relative order after the scored ones.
func RankOutcomes(outcomes []pipeline.Outcome) []pipeline.Outcome {
	ranked := make([]pipeline.Outcome, len(outcomes))
	copy(ranked, outcomes)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Match, ranked[j].Match
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Score > b.Score
		}
	})
	return ranked
}

func writeSummarySheet(f *excelize.File, outcomes []pipeline.Outcome, req *types.JobRequirements) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 50); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "CV Screening Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", titleStyle); err != nil {
		return err
	}

	summary := pipeline.Summarize(outcomes)
	rows := [][2]any{
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Documents Processed:", summary.Total},
		{"Filename Fallbacks:", summary.FellBack},
		{"Empty Documents:", summary.Empty},
	}
	if req != nil {
		rows = append(rows,
			[2]any{"Job Title:", req.Title},
			[2]any{"Mandatory Skills:", strings.Join(req.MandatorySkills, ", ")},
			[2]any{"Preferred Skills:", strings.Join(req.PreferredSkills, ", ")},
			[2]any{"Accepted:", summary.Accepted},
			[2]any{"Rejected:", summary.Rejected},
		)
	}

	for i, r := range rows {
		row := i + 3
		label, _ := excelize.CoordinatesToCellName(1, row)
		value, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, label, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, value, r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeCandidatesSheet(f *excelize.File, outcomes []pipeline.Outcome) error {
	sheet := CandidatesSheet

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	rowStyles := make(map[string]int)
	for key, color := range map[string]string{
		types.DecisionAccepted: acceptedColor,
		types.DecisionRejected: rejectedColor,
		"fallback":             fallbackColor,
	} {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		rowStyles[key] = style
	}

	for col, header := range candidateHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "H", 24); err != nil {
		return err
	}

	for i, o := range outcomes {
		row := i + 2
		values := candidateRow(i+1, o)
		first, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, first, &values); err != nil {
			return err
		}

		styleKey := ""
		switch {
		case o.FellBack:
			styleKey = "fallback"
		case o.Match != nil:
			styleKey = o.Match.Decision
		}
		if style, ok := rowStyles[styleKey]; ok {
			last, _ := excelize.CoordinatesToCellName(len(candidateHeaders), row)
			if err := f.SetCellStyle(sheet, first, last, style); err != nil {
				return err
			}
		}
	}

	if len(outcomes) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(candidateHeaders), len(outcomes)+1)
		if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func candidateRow(rank int, o pipeline.Outcome) []any {
	r := o.Result
	if r == nil {
		r = &types.ExtractionResult{Name: types.UnknownName}
	}

	var score any = ""
	decision := ""
	missing := ""
	if o.Match != nil {
		score = o.Match.Score
		decision = o.Match.Decision
		missing = strings.Join(o.Match.MissingMandatory, ", ")
	}

	review := strings.Join(r.MissingFields(), ", ")
	if o.FellBack {
		review = strings.TrimPrefix(review+", extraction failed", ", ")
	}

	return []any{
		rank, o.Filename, r.DisplayName(), r.Email, r.Phone, r.Links.GitHub, r.Links.LinkedIn,
		strings.Join(r.Skills, ", "), score, decision, missing, review,
	}
}
