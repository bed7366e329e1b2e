package database

import (
	"gorm.io/gorm"

	"github.com/studentplus/schoolportal/models"
	"github.com/studentplus/schoolportal/services"
)

// RosterStore resolves class rosters from the students table.
type RosterStore struct {
	db *gorm.DB
}

func NewRosterStore(db *gorm.DB) *RosterStore {
	return &RosterStore{db: db}
}

func (s *RosterStore) GetClassRoster(classSectionID uint) ([]services.RosterEntry, error) {
	var students []models.Student
	err := s.db.
		Where("class_section_id = ? AND status = ?", classSectionID, "active").
		Order("student_code ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	out := make([]services.RosterEntry, 0, len(students))
	for _, st := range students {
		out = append(out, services.RosterEntry{
			StudentID:   st.ID,
			StudentCode: st.StudentCode,
			FullName:    st.FullName(),
		})
	}
	return out, nil
}
