package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/studentplus/schoolportal/models"
)

func sampleReport() Report {
	cols := []string{"2025-09-08", "2025-09-09"}
	return Report{
		Period:    PeriodWeekly,
		StartDate: "2025-09-08",
		EndDate:   "2025-09-14",
		Classes: []ClassReport{
			{
				ClassSectionID: 10,
				DisplayName:    "1/1",
				DateColumns:    cols,
				Students: []StudentReportRow{
					{
						StudentID: 1, StudentCode: "S001", FullName: "Ada Apple",
						Statuses: map[string]models.AttendanceStatus{
							"2025-09-08": models.StatusPresent,
							"2025-09-09": models.StatusAbsent,
						},
						Percentage: 50,
					},
				},
				AveragePercentage: 50,
			},
			{
				ClassSectionID: 20,
				DisplayName:    "1/2",
				DateColumns:    cols,
				Students: []StudentReportRow{
					{
						StudentID: 2, StudentCode: "S002", FullName: "Ben Berry",
						Statuses: map[string]models.AttendanceStatus{
							"2025-09-08": models.StatusLate,
							"2025-09-09": models.StatusExcused,
						},
						Percentage: 50,
					},
				},
				AveragePercentage: 50,
			},
		},
		Summary: []ReportSummaryRow{
			{DisplayName: "1/1", StudentCount: 1, Percentage: 50},
			{DisplayName: "1/2", StudentCount: 1, Percentage: 50},
		},
		Overall: 50,
	}
}

func TestReportSheets(t *testing.T) {
	sheets := ReportSheets(sampleReport())

	if len(sheets) != 3 { // two classes + summary
		t.Fatalf("len(sheets) = %d, want 3", len(sheets))
	}
	if sheets[0].Name != "1/1" || sheets[2].Name != "Summary" {
		t.Errorf("sheet names = %q, %q; want class name and Summary", sheets[0].Name, sheets[2].Name)
	}

	rows := sheets[0].Rows
	if len(rows) != 3 { // header + one student + class average
		t.Fatalf("sheet rows = %d, want 3", len(rows))
	}
	header := rows[0]
	if header[0] != "Student Code" || header[len(header)-1] != "Percentage" {
		t.Errorf("header = %v", header)
	}
	stu := rows[1]
	if stu[1] != "Ada Apple" || stu[2] != "present" || stu[3] != "absent" || stu[4] != "50%" {
		t.Errorf("student row = %v", stu)
	}
	avg := rows[2]
	if avg[0] != "Class Average" || avg[len(avg)-1] != "50%" {
		t.Errorf("average row = %v", avg)
	}

	sum := sheets[2].Rows
	last := sum[len(sum)-1]
	if last[0] != "Overall Average" || last[2] != "50%" {
		t.Errorf("overall row = %v", last)
	}
}

func TestReportSheetsSingleClassNoSummary(t *testing.T) {
	r := sampleReport()
	r.Classes = r.Classes[:1]
	r.Summary = nil

	sheets := ReportSheets(r)
	if len(sheets) != 1 {
		t.Fatalf("len(sheets) = %d, want 1", len(sheets))
	}
}

func TestCSVWorkbookWriter(t *testing.T) {
	var buf bytes.Buffer
	w := CSVWorkbookWriter{}

	if err := w.WriteWorkbook(&buf, ReportSheets(sampleReport())); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"1/1\n",
		"Student Code,Student Name,2025-09-08,2025-09-09,Percentage\n",
		"S001,Ada Apple,present,absent,50%\n",
		"Summary\n",
		"Overall Average,,50%\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV output missing %q\n---\n%s", want, out)
		}
	}
	if w.ContentType() != "text/csv" || w.FileExtension() != "csv" {
		t.Errorf("content metadata = %s/%s", w.ContentType(), w.FileExtension())
	}
}
