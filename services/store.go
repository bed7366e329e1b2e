package services

import (
	"time"

	"github.com/studentplus/schoolportal/models"
)

// AttendanceStore is the persistence boundary for attendance rows. The
// production implementation lives in the database package; tests use an
// in-memory double.
type AttendanceStore interface {
	// FetchForStudentAndMonth returns the student's records in one class
	// section whose date falls inside the given month.
	FetchForStudentAndMonth(studentID, classSectionID uint, year int, month time.Month) ([]models.Attendance, error)

	// FetchAllForStudent returns the student's unbounded history in one
	// class section, for the cumulative percentage.
	FetchAllForStudent(studentID, classSectionID uint) ([]models.Attendance, error)

	// FetchForStudentAndRange returns records with start <= date <= end,
	// both YYYY-MM-DD inclusive.
	FetchForStudentAndRange(studentID, classSectionID uint, start, end string) ([]models.Attendance, error)

	// Upsert writes the status for rec's (student, class section, date)
	// triple, replacing any existing row for the same triple. The final
	// state is one row per triple regardless of how often it is called.
	Upsert(rec models.Attendance) (models.Attendance, error)
}

// RosterEntry is one student of a class section, as shown in reports.
type RosterEntry struct {
	StudentID   uint   `json:"student_id"`
	StudentCode string `json:"student_code"`
	FullName    string `json:"full_name"`
}

// RosterStore resolves class sections and their rosters.
type RosterStore interface {
	GetClassRoster(classSectionID uint) ([]RosterEntry, error)
}
