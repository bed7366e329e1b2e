package services

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Sheet is one named table of an export: a header row plus data rows.
type Sheet struct {
	Name string
	Rows [][]string
}

// WorkbookWriter serialises a list of named tables into a downloadable
// document. The portal ships a CSV writer; a spreadsheet writer can be
// swapped in without touching the report code.
type WorkbookWriter interface {
	WriteWorkbook(w io.Writer, sheets []Sheet) error
	ContentType() string
	FileExtension() string
}

// ReportSheets flattens a report into export tables: one per class, each
// with a trailing percentage column and a class-average row, plus a
// summary table when more than one class was selected.
func ReportSheets(report Report) []Sheet {
	var sheets []Sheet
	for _, cr := range report.Classes {
		header := append([]string{"Student Code", "Student Name"}, cr.DateColumns...)
		header = append(header, "Percentage")

		rows := [][]string{header}
		for _, stu := range cr.Students {
			row := []string{stu.StudentCode, stu.FullName}
			for _, date := range cr.DateColumns {
				row = append(row, string(stu.Statuses[date]))
			}
			row = append(row, fmt.Sprintf("%d%%", stu.Percentage))
			rows = append(rows, row)
		}

		avg := make([]string, len(header))
		avg[0] = "Class Average"
		avg[len(avg)-1] = fmt.Sprintf("%d%%", cr.AveragePercentage)
		rows = append(rows, avg)

		sheets = append(sheets, Sheet{Name: cr.DisplayName, Rows: rows})
	}

	if len(report.Summary) > 0 {
		rows := [][]string{{"Class", "Students", "Percentage"}}
		for _, s := range report.Summary {
			rows = append(rows, []string{s.DisplayName, fmt.Sprintf("%d", s.StudentCount), fmt.Sprintf("%d%%", s.Percentage)})
		}
		rows = append(rows, []string{"Overall Average", "", fmt.Sprintf("%d%%", report.Overall)})
		sheets = append(sheets, Sheet{Name: "Summary", Rows: rows})
	}
	return sheets
}

// CSVWorkbookWriter writes all sheets into a single CSV stream, each sheet
// preceded by a title line and separated by a blank line.
type CSVWorkbookWriter struct{}

func (CSVWorkbookWriter) ContentType() string   { return "text/csv" }
func (CSVWorkbookWriter) FileExtension() string { return "csv" }

func (CSVWorkbookWriter) WriteWorkbook(w io.Writer, sheets []Sheet) error {
	cw := csv.NewWriter(w)
	for i, sheet := range sheets {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{sheet.Name}); err != nil {
			return err
		}
		for _, row := range sheet.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
