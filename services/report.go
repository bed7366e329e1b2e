package services

import (
	"time"

	"github.com/studentplus/schoolportal/models"
)

// Period selects the report window relative to "now".
type Period string

const (
	PeriodWeekly  Period = "weekly"  // Monday..Sunday of now's week
	PeriodMonthly Period = "monthly" // first..last day of now's month
)

func (p Period) Valid() bool { return p == PeriodWeekly || p == PeriodMonthly }

// ClassSelection names one class section to report on.
type ClassSelection struct {
	ClassSectionID uint   `json:"class_section_id"`
	DisplayName    string `json:"display_name"`
}

// StudentReportRow is one roster line: a status per date column plus the
// student's percentage over the whole window.
type StudentReportRow struct {
	StudentID   uint                               `json:"student_id"`
	StudentCode string                             `json:"student_code"`
	FullName    string                             `json:"full_name"`
	Statuses    map[string]models.AttendanceStatus `json:"statuses"` // date -> status, every column filled
	Percentage  int                                `json:"percentage"`
}

// ClassReport is the per-section table: weekday date columns, one row per
// student, and the class average (mean of the student percentages).
type ClassReport struct {
	ClassSectionID    uint               `json:"class_section_id"`
	DisplayName       string             `json:"display_name"`
	DateColumns       []string           `json:"date_columns"`
	Students          []StudentReportRow `json:"students"`
	AveragePercentage int                `json:"average_percentage"`
}

// ReportSummaryRow is one line of the cross-class summary table.
type ReportSummaryRow struct {
	DisplayName  string `json:"display_name"`
	StudentCount int    `json:"student_count"`
	Percentage   int    `json:"percentage"`
}

// Report is the full export payload. Summary is present only when more
// than one class was selected; Overall is the mean of the class averages.
type Report struct {
	Period    Period             `json:"period"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Classes   []ClassReport      `json:"classes"`
	Summary   []ReportSummaryRow `json:"summary,omitempty"`
	Overall   int                `json:"overall_percentage"`
}

// ReportAggregator builds multi-class attendance matrices for export.
type ReportAggregator struct {
	store  AttendanceStore
	roster RosterStore
}

func NewReportAggregator(store AttendanceStore, roster RosterStore) *ReportAggregator {
	return &ReportAggregator{store: store, roster: roster}
}

// periodWindow derives the concrete [start, end] window from period and now.
func periodWindow(period Period, now time.Time) (time.Time, time.Time) {
	if period == PeriodWeekly {
		start := StartOfWeek(now)
		return start, start.AddDate(0, 0, 6)
	}
	d := civilDate(now)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return start, start.AddDate(0, 1, -1)
}

// weekdayColumns lists the YYYY-MM-DD weekday dates of [start, end].
func weekdayColumns(start, end time.Time) []string {
	var cols []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			cols = append(cols, d.Format(models.DateLayout))
		}
	}
	return cols
}

// BuildReport assembles one table per selected class over the period's
// window. Date columns with no record are filled with an explicit absent,
// so exported cells are never blank. Class averages are the arithmetic
// mean of the student percentages, and the overall figure is the mean of
// the class averages; neither is a pooled present/total ratio.
func (agg *ReportAggregator) BuildReport(selections []ClassSelection, period Period, now time.Time) (Report, error) {
	if !period.Valid() {
		return Report{}, &ValidationError{Field: "period", Reason: "must be weekly or monthly"}
	}
	if len(selections) == 0 {
		return Report{}, &ValidationError{Field: "selections", Reason: "at least one class section required"}
	}

	start, end := periodWindow(period, now)
	cols := weekdayColumns(start, end)

	report := Report{
		Period:    period,
		StartDate: start.Format(models.DateLayout),
		EndDate:   end.Format(models.DateLayout),
	}

	classSum := 0
	for _, sel := range selections {
		if sel.ClassSectionID == 0 {
			return Report{}, &ValidationError{Field: "class_section_id", Reason: "required"}
		}
		roster, err := agg.roster.GetClassRoster(sel.ClassSectionID)
		if err != nil {
			return Report{}, storeErr("roster.fetch", err)
		}

		cr := ClassReport{
			ClassSectionID: sel.ClassSectionID,
			DisplayName:    sel.DisplayName,
			DateColumns:    cols,
		}

		studentSum := 0
		for _, stu := range roster {
			recs, err := agg.store.FetchForStudentAndRange(stu.StudentID, sel.ClassSectionID, report.StartDate, report.EndDate)
			if err != nil {
				return Report{}, storeErr("attendance.fetch_range", err)
			}
			byDate := make(map[string]models.AttendanceStatus, len(recs))
			for _, r := range recs {
				byDate[r.Date] = r.Status
			}

			row := StudentReportRow{
				StudentID:   stu.StudentID,
				StudentCode: stu.StudentCode,
				FullName:    stu.FullName,
				Statuses:    make(map[string]models.AttendanceStatus, len(cols)),
			}
			present := 0
			for _, date := range cols {
				st, ok := byDate[date]
				if !ok {
					st = models.StatusAbsent // unmarked days export as absent
				}
				row.Statuses[date] = st
				if st.CountsAsPresent() {
					present++
				}
			}
			row.Percentage = roundPercent(present, len(cols))
			studentSum += row.Percentage
			cr.Students = append(cr.Students, row)
		}

		cr.AveragePercentage = meanPercent(studentSum, len(cr.Students))
		classSum += cr.AveragePercentage
		report.Classes = append(report.Classes, cr)
	}

	report.Overall = meanPercent(classSum, len(report.Classes))
	if len(report.Classes) > 1 {
		for _, cr := range report.Classes {
			report.Summary = append(report.Summary, ReportSummaryRow{
				DisplayName:  cr.DisplayName,
				StudentCount: len(cr.Students),
				Percentage:   cr.AveragePercentage,
			})
		}
	}
	return report, nil
}
