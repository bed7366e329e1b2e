package models

import "time"

// ClassSection is one teaching group (e.g. "1/2 Mathematics"): a display
// name, the owning teacher and, through students.class_section_id, a roster.
type ClassSection struct {
	ID           uint      `gorm:"primaryKey"            json:"id"`
	Name         string    `gorm:"size:80;not null"      json:"name"`
	AcademicYear string    `gorm:"size:10;not null"      json:"academic_year"`
	TeacherID    uint      `gorm:"index;not null"        json:"teacher_id"` // FK -> teachers.id (logical)
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
