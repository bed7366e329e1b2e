package models

import (
	"strings"
	"time"
)

type Student struct {
	ID             uint      `gorm:"primaryKey"                    json:"id"`
	StudentCode    string    `gorm:"size:20;uniqueIndex;not null"  json:"student_code"` // code shown in tables
	FirstName      string    `gorm:"size:50;not null"              json:"first_name"`
	LastName       string    `gorm:"size:50;not null"              json:"last_name"`
	ClassSectionID uint      `gorm:"index;not null"                json:"class_section_id"`
	Status         string    `gorm:"size:20;not null;default:'active'" json:"status"` // active|left|suspended
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName is the display label used in calendars and reports.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
