package services

import (
	"math"
	"time"

	"github.com/studentplus/schoolportal/models"
)

// roundPercent turns a present/total ratio into an integer percentage in
// [0, 100]. A zero denominator yields 0, never NaN.
func roundPercent(present, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(present) / float64(total) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// meanPercent is the arithmetic mean of n percentages summing to sum.
func meanPercent(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// ComputeMonthlyPercentage is the month-to-date formula: every weekday of
// the given month counts toward the total, whether or not it has been
// recorded yet. An unmarked weekday therefore counts against the student.
func ComputeMonthlyPercentage(records []models.Attendance, year int, month time.Month) int {
	byDate := make(map[string]models.AttendanceStatus, len(records))
	for _, r := range records {
		byDate[r.Date] = r.Status
	}

	totalDays := 0
	presentDays := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			continue
		}
		totalDays++
		if st, ok := byDate[d.Format(models.DateLayout)]; ok && st.CountsAsPresent() {
			presentDays++
		}
	}
	return roundPercent(presentDays, totalDays)
}

// ComputeOverallPercentage is the cumulative formula: only dates that
// actually have a record count toward the total. Records are deduplicated
// by date first (last write wins) so a duplicated row cannot double-count
// a day, then weekend dates are dropped.
func ComputeOverallPercentage(records []models.Attendance) int {
	byDate := make(map[string]models.AttendanceStatus, len(records))
	for _, r := range records {
		byDate[r.Date] = r.Status
	}

	totalDays := 0
	presentDays := 0
	for date, st := range byDate {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil || IsWeekend(d) {
			continue
		}
		totalDays++
		if st.CountsAsPresent() {
			presentDays++
		}
	}
	return roundPercent(presentDays, totalDays)
}
