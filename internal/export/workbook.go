// Package export renders the roadmap and its validation results as an
// .xlsx study checklist.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-prep/internal/corpus"
	"github.com/p-n-ai/pai-prep/internal/schedule"
	"github.com/p-n-ai/pai-prep/internal/validate"
)

const (
	ChecklistSheet = "Checklist"
	CoverageSheet  = "Coverage"
)

var (
	checklistHeader = []any{"Day", "Level", "Topic", "Path", "Questions", "Count", "Wraps", "Done"}
	coverageHeader  = []any{"Path", "Topic", "Rule", "Quota", "Total", "Days Used", "Max Day", "Min (Days)", "Min (Progression)", "Duplicates", "Status", "Fresh Days"}
)

// Workbook builds the checklist workbook from a validation report. The
// caller owns the returned file and must Close it.
func Workbook(report *validate.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ChecklistSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming checklist sheet: %w", err)
	}
	if _, err := f.NewSheet(CoverageSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating coverage sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeChecklist(f, report, header); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeCoverage(f, report, header); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, report *validate.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeChecklist(f *excelize.File, report *validate.Report, header int) error {
	if err := writeRow(f, ChecklistSheet, 1, checklistHeader); err != nil {
		return err
	}

	row := 2
	for _, plan := range report.Plans {
		for _, t := range plan.AllTopics() {
			path := corpus.CleanRef(t.ReferencePath)
			questions, count, wraps := "", 0, ""

			if cov, ok := report.CoverageFor(path); ok && t.ReferencePath != "" {
				if w, err := schedule.Select(plan.DayNumber, cov.Quota, cov.Total); err == nil && w.Count > 0 {
					first, last := w.Range()
					questions = fmt.Sprintf("%d-%d", first, last)
					count = w.Count
					if w.Wraps() {
						wraps = "yes"
					}
				}
			}

			if err := writeRow(f, ChecklistSheet, row, []any{
				plan.DayNumber, plan.Level, t.Name, path, questions, count, wraps, "",
			}); err != nil {
				return err
			}
			row++
		}
	}

	return finishSheet(f, ChecklistSheet, header, len(checklistHeader), row-1, map[string]float64{
		"A": 6, "B": 14, "C": 36, "D": 44, "E": 12, "F": 8, "G": 8, "H": 8,
	})
}

func writeCoverage(f *excelize.File, report *validate.Report, header int) error {
	if err := writeRow(f, CoverageSheet, 1, coverageHeader); err != nil {
		return err
	}

	for i, c := range report.Coverage {
		if err := writeRow(f, CoverageSheet, i+2, []any{
			c.Path, c.Topic, c.Rule, c.Quota, c.Total, len(c.Days), c.MaxDay,
			c.CoverageMin, c.ProgressionMin, c.Duplicates, string(c.Status), c.FreshDays,
		}); err != nil {
			return err
		}
	}

	return finishSheet(f, CoverageSheet, header, len(coverageHeader), len(report.Coverage)+1, map[string]float64{
		"A": 44, "B": 30, "C": 16,
	})
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func finishSheet(f *excelize.File, sheet string, header, cols, lastRow int, widths map[string]float64) error {
	if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing %s column %s: %w", sheet, col, err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(cols, max(lastRow, 1))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("filtering %s: %w", sheet, err)
	}
	return nil
}
