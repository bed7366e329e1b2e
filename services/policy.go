package services

import "time"

// editGraceDays is how far back attendance may still be corrected,
// counted in calendar days from today.
const editGraceDays = 3

// civilDate strips the clock and the zone, keeping t's wall-clock
// year/month/day. Dates from different locations compare by calendar
// day, never by instant.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfWeek returns the Monday on or before t, at midnight. A Sunday
// belongs to the week that started six days earlier.
func StartOfWeek(t time.Time) time.Time {
	d := civilDate(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 { // Sunday
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

// IsEditable decides whether a teacher may create or change the attendance
// record for date, given the current instant. Weekends are never editable.
// Weekdays are editable when they fall in the current week (Monday through
// Sunday) or later, but never more than three calendar days in the past.
// Future dates carry no upper bound.
func IsEditable(date, now time.Time) bool {
	if IsWeekend(date) {
		return false
	}

	d := civilDate(date)
	floor := civilDate(now).AddDate(0, 0, -editGraceDays)
	if d.Before(floor) {
		return false
	}

	// current week, or any later date
	return !d.Before(StartOfWeek(now))
}
