package models

import "time"

// AttendanceStatus is the per-day status of one student in one class section.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
	StatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is one of the four supported values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusExcused, StatusAbsent:
		return true
	default:
		return false
	}
}

// CountsAsPresent reports whether the status counts toward attendance
// percentages. Late arrivals still count as attended.
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// DateLayout is the storage format of Attendance.Date.
const DateLayout = "2006-01-02"

// Attendance is one student's status on one day in one class section.
// At most one row may exist per (student, class_section, date); the
// composite unique index backs the store's atomic upsert.
type Attendance struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	StudentID      uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_triple,priority:1"`
	ClassSectionID uint             `json:"class_section_id" gorm:"not null;uniqueIndex:idx_attendance_triple,priority:2"`
	Date           string           `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_triple,priority:3"` // YYYY-MM-DD
	Status         AttendanceStatus `json:"status" gorm:"size:20;not null"`
	TeacherID      *uint            `json:"teacher_id,omitempty"`
	QuarterID      *uint            `json:"quarter_id,omitempty"`
	RecordedAt     time.Time        `json:"recorded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
