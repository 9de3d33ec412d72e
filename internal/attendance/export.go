package attendance

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/classlog/internal/constants"
)

const (
	SummarySheet = "Summary"
	HistorySheet = "History"
)

var summaryHeader = []string{"Code", "Subject", "Faculty", "Type", "Present", "Absent", "On Duty", "Cancelled", "Total", "Percentage", "Classes Needed"}

var historyHeader = []string{"Code", "Date", "Time", "Attendance", "Unit", "Notes"}

// Export writes the report as an xlsx workbook with a summary sheet and a
// class history sheet.
func Export(w io.Writer, title string, list []SubjectStats) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	bandStyles := make(map[Band]int, 3)
	for _, b := range []Band{BandGood, BandWarning, BandDanger} {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: b.Color()},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s style: %w", b, err)
		}
		bandStyles[b] = style
	}

	// Summary
	lastCol, _ := excelize.ColumnNumberToName(len(summaryHeader))
	if err := f.SetCellValue(SummarySheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(SummarySheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", headerStyle); err != nil {
		return err
	}
	if err := writeRow(f, SummarySheet, 2, toAny(summaryHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A2", lastCol+"2", headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 12)
	_ = f.SetColWidth(SummarySheet, "B", "B", 32)

	row := 3
	for _, s := range list {
		needed := ""
		if n := s.ClassesNeeded(); n > 0 {
			needed = fmt.Sprintf("%d", n)
		}
		values := []any{
			s.Code, s.Name, s.Faculty, strings.ToUpper(string(s.CourseType)),
			s.Present, s.Absent, s.OnDuty, s.Cancelled, s.Total,
			fmt.Sprintf("%d%%", s.Percentage), needed,
		}
		if err := writeRow(f, SummarySheet, row, values); err != nil {
			return err
		}
		pctCell, _ := excelize.CoordinatesToCellName(10, row)
		if err := f.SetCellStyle(SummarySheet, pctCell, pctCell, bandStyles[BandFor(s.Percentage)]); err != nil {
			return err
		}
		row++
	}

	// History
	lastCol, _ = excelize.ColumnNumberToName(len(historyHeader))
	if err := writeRow(f, HistorySheet, 1, toAny(historyHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(HistorySheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(HistorySheet, "F", "F", 40)

	row = 2
	for _, s := range list {
		for _, c := range s.Classes {
			unit := ""
			if c.Unit > 0 {
				unit = fmt.Sprintf("%d", c.Unit)
			}
			values := []any{
				s.Code, c.Date.Format(constants.DateFormat), c.Time,
				string(c.Attendance), unit, c.Notes,
			}
			if err := writeRow(f, HistorySheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
