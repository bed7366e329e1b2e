package services

import (
	"errors"
	"testing"
	"time"

	"github.com/studentplus/schoolportal/models"
)

type memRoster struct {
	rosters map[uint][]RosterEntry
	fail    bool
}

func (m *memRoster) GetClassRoster(classSectionID uint) ([]RosterEntry, error) {
	if m.fail {
		return nil, errBoom
	}
	return m.rosters[classSectionID], nil
}

func seedWeek(store *memStore, studentID, classID uint, dates []string, st models.AttendanceStatus) {
	for _, d := range dates {
		_, _ = store.Upsert(models.Attendance{StudentID: studentID, ClassSectionID: classID, Date: d, Status: st})
	}
}

func TestBuildReportWeekly(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC) // Wednesday
	week := []string{"2025-09-08", "2025-09-09", "2025-09-10", "2025-09-11", "2025-09-12"}

	store := &memStore{}
	seedWeek(store, 1, 10, week, models.StatusPresent) // student X: all five days
	// student Y: nothing recorded at all

	roster := &memRoster{rosters: map[uint][]RosterEntry{
		10: {
			{StudentID: 1, StudentCode: "S001", FullName: "Ada Apple"},
			{StudentID: 2, StudentCode: "S002", FullName: "Ben Berry"},
		},
	}}

	report, err := NewReportAggregator(store, roster).BuildReport(
		[]ClassSelection{{ClassSectionID: 10, DisplayName: "1/1"}}, PeriodWeekly, now)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if report.StartDate != "2025-09-08" || report.EndDate != "2025-09-14" {
		t.Errorf("window = %s..%s, want 2025-09-08..2025-09-14", report.StartDate, report.EndDate)
	}
	if len(report.Classes) != 1 {
		t.Fatalf("len(Classes) = %d, want 1", len(report.Classes))
	}
	cr := report.Classes[0]
	if len(cr.DateColumns) != 5 {
		t.Fatalf("DateColumns = %v, want the five weekdays", cr.DateColumns)
	}
	if len(cr.Students) != 2 {
		t.Fatalf("len(Students) = %d, want 2", len(cr.Students))
	}

	x, y := cr.Students[0], cr.Students[1]
	if x.Percentage != 100 {
		t.Errorf("student X percentage = %d, want 100", x.Percentage)
	}
	if y.Percentage != 0 {
		t.Errorf("student Y percentage = %d, want 0", y.Percentage)
	}
	// unmarked columns export as explicit absent, never blank
	for _, d := range cr.DateColumns {
		if st, ok := y.Statuses[d]; !ok || st != models.StatusAbsent {
			t.Errorf("student Y %s = %q, want explicit absent", d, st)
		}
	}
	if cr.AveragePercentage != 50 { // (100 + 0) / 2
		t.Errorf("class average = %d, want 50", cr.AveragePercentage)
	}
	if report.Overall != 50 {
		t.Errorf("overall = %d, want 50", report.Overall)
	}
	if report.Summary != nil {
		t.Errorf("summary present for a single class selection")
	}
}

func TestBuildReportMonthly(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

	store := &memStore{}
	roster := &memRoster{rosters: map[uint][]RosterEntry{
		10: {{StudentID: 1, StudentCode: "S001", FullName: "Ada Apple"}},
	}}

	report, err := NewReportAggregator(store, roster).BuildReport(
		[]ClassSelection{{ClassSectionID: 10, DisplayName: "1/1"}}, PeriodMonthly, now)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if report.StartDate != "2025-09-01" || report.EndDate != "2025-09-30" {
		t.Errorf("window = %s..%s, want the calendar month", report.StartDate, report.EndDate)
	}
	if got := len(report.Classes[0].DateColumns); got != 22 {
		t.Errorf("weekday columns = %d, want 22", got)
	}
}

func TestBuildReportMultiClassSummary(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	week := []string{"2025-09-08", "2025-09-09", "2025-09-10", "2025-09-11", "2025-09-12"}

	store := &memStore{}
	seedWeek(store, 1, 10, week, models.StatusPresent)      // class 10: 100%
	seedWeek(store, 2, 20, week[:1], models.StatusPresent)  // class 20: 1 of 5
	roster := &memRoster{rosters: map[uint][]RosterEntry{
		10: {{StudentID: 1, StudentCode: "S001", FullName: "Ada Apple"}},
		20: {{StudentID: 2, StudentCode: "S002", FullName: "Ben Berry"}},
	}}

	report, err := NewReportAggregator(store, roster).BuildReport([]ClassSelection{
		{ClassSectionID: 10, DisplayName: "1/1"},
		{ClassSectionID: 20, DisplayName: "1/2"},
	}, PeriodWeekly, now)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(report.Summary) != 2 {
		t.Fatalf("len(Summary) = %d, want 2", len(report.Summary))
	}
	if report.Classes[0].AveragePercentage != 100 {
		t.Errorf("class 1/1 average = %d, want 100", report.Classes[0].AveragePercentage)
	}
	if report.Classes[1].AveragePercentage != 20 { // 1/5
		t.Errorf("class 1/2 average = %d, want 20", report.Classes[1].AveragePercentage)
	}
	if report.Overall != 60 { // mean of class averages, not pooled
		t.Errorf("overall = %d, want 60", report.Overall)
	}
	if report.Summary[0].StudentCount != 1 || report.Summary[0].Percentage != 100 {
		t.Errorf("summary row 0 = %+v", report.Summary[0])
	}
}

func TestBuildReportValidation(t *testing.T) {
	agg := NewReportAggregator(&memStore{}, &memRoster{})
	now := time.Now()

	tests := []struct {
		name   string
		sels   []ClassSelection
		period Period
	}{
		{name: "bad period", sels: []ClassSelection{{ClassSectionID: 1}}, period: Period("yearly")},
		{name: "no selections", sels: nil, period: PeriodWeekly},
		{name: "zero class id", sels: []ClassSelection{{ClassSectionID: 0}}, period: PeriodWeekly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.BuildReport(tt.sels, tt.period, now)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestBuildReportStoreFailure(t *testing.T) {
	roster := &memRoster{rosters: map[uint][]RosterEntry{
		10: {{StudentID: 1, StudentCode: "S001", FullName: "Ada Apple"}},
	}}
	_, err := NewReportAggregator(&memStore{failAll: true}, roster).BuildReport(
		[]ClassSelection{{ClassSectionID: 10, DisplayName: "1/1"}}, PeriodWeekly, time.Now())
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StoreError", err)
	}
}
