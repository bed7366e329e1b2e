package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studentplus/schoolportal/models"
)

// AttendanceStore is the GORM-backed record store. The upsert is atomic:
// it rides on the unique index over (student_id, class_section_id, date),
// so two concurrent writes to the same triple can never leave two rows.
type AttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (s *AttendanceStore) FetchForStudentAndMonth(studentID, classSectionID uint, year int, month time.Month) ([]models.Attendance, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.FetchForStudentAndRange(studentID, classSectionID,
		first.Format(models.DateLayout), last.Format(models.DateLayout))
}

func (s *AttendanceStore) FetchAllForStudent(studentID, classSectionID uint) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := s.db.
		Where("student_id = ? AND class_section_id = ?", studentID, classSectionID).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AttendanceStore) FetchForStudentAndRange(studentID, classSectionID uint, start, end string) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := s.db.
		Where("student_id = ? AND class_section_id = ?", studentID, classSectionID).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts the row or, when the triple already exists, replaces its
// status and recording metadata in place.
func (s *AttendanceStore) Upsert(rec models.Attendance) (models.Attendance, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"},
			{Name: "class_section_id"},
			{Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "teacher_id", "quarter_id", "recorded_at", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		if isUniqueViolation(err) {
			// lost a race inside the same statement window; the row exists now
			return s.fetchTriple(rec.StudentID, rec.ClassSectionID, rec.Date)
		}
		return models.Attendance{}, err
	}
	// re-read so the caller sees the authoritative row, id included
	return s.fetchTriple(rec.StudentID, rec.ClassSectionID, rec.Date)
}

func (s *AttendanceStore) fetchTriple(studentID, classSectionID uint, date string) (models.Attendance, error) {
	var row models.Attendance
	err := s.db.
		Where("student_id = ? AND class_section_id = ? AND date = ?", studentID, classSectionID, date).
		First(&row).Error
	if err != nil {
		return models.Attendance{}, fmt.Errorf("read back attendance row: %w", err)
	}
	return row, nil
}

// isUniqueViolation reports a Postgres 23505 duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
