package services

import (
	"time"

	"github.com/studentplus/schoolportal/models"
)

// DayCell is one calendar cell of the month view.
type DayCell struct {
	Date      string                   `json:"date"` // YYYY-MM-DD
	Status    *models.AttendanceStatus `json:"status"`
	Editable  bool                     `json:"editable"`
	IsWeekend bool                     `json:"is_weekend"`
	IsToday   bool                     `json:"is_today"`
}

// MonthView is everything the calendar page needs for one student in one
// class section.
type MonthView struct {
	Days              []DayCell `json:"days"`
	MonthlyPercentage int       `json:"monthly_percentage"`
	OverallPercentage int       `json:"overall_percentage"`
}

// AttendanceService composes the store, the edit-window policy and the two
// percentage calculators for the single-student calendar use case.
type AttendanceService struct {
	store AttendanceStore
}

func NewAttendanceService(store AttendanceStore) *AttendanceService {
	return &AttendanceService{store: store}
}

// GetMonthView builds the calendar for one student/section/month: one cell
// per calendar day, plus the month-to-date and cumulative percentages.
func (svc *AttendanceService) GetMonthView(studentID, classSectionID uint, year int, month time.Month, now time.Time) (MonthView, error) {
	if err := requireIDs(studentID, classSectionID); err != nil {
		return MonthView{}, err
	}
	if month < time.January || month > time.December {
		return MonthView{}, &ValidationError{Field: "month", Reason: "must be 1..12"}
	}

	monthRecs, err := svc.store.FetchForStudentAndMonth(studentID, classSectionID, year, month)
	if err != nil {
		return MonthView{}, storeErr("attendance.fetch_month", err)
	}
	allRecs, err := svc.store.FetchAllForStudent(studentID, classSectionID)
	if err != nil {
		return MonthView{}, storeErr("attendance.fetch_all", err)
	}

	byDate := make(map[string]models.AttendanceStatus, len(monthRecs))
	for _, r := range monthRecs {
		byDate[r.Date] = r.Status
	}

	today := civilDate(now).Format(models.DateLayout)
	var days []DayCell
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := d.Format(models.DateLayout)
		cell := DayCell{
			Date:      date,
			Editable:  IsEditable(d, now),
			IsWeekend: IsWeekend(d),
			IsToday:   date == today,
		}
		if st, ok := byDate[date]; ok {
			s := st
			cell.Status = &s
		}
		days = append(days, cell)
	}

	return MonthView{
		Days:              days,
		MonthlyPercentage: ComputeMonthlyPercentage(monthRecs, year, month),
		OverallPercentage: ComputeOverallPercentage(allRecs),
	}, nil
}

// SetDayStatus validates the edit window, upserts the record for the
// (student, section, date) triple and recomputes both percentages from a
// fresh read. Percentages are never patched from the single changed cell:
// a correction can change which day was already counted.
func (svc *AttendanceService) SetDayStatus(studentID, classSectionID uint, date time.Time, status models.AttendanceStatus, teacherID, quarterID *uint, now time.Time) (models.Attendance, MonthView, error) {
	if err := requireIDs(studentID, classSectionID); err != nil {
		return models.Attendance{}, MonthView{}, err
	}
	if !status.Valid() {
		return models.Attendance{}, MonthView{}, &ValidationError{Field: "status", Reason: "must be present, late, excused or absent"}
	}

	day := civilDate(date)
	if IsWeekend(day) {
		return models.Attendance{}, MonthView{}, &PolicyViolation{Date: day.Format(models.DateLayout), Reason: "weekends are not school days"}
	}
	if !IsEditable(day, now) {
		return models.Attendance{}, MonthView{}, &PolicyViolation{Date: day.Format(models.DateLayout), Reason: "outside the edit window"}
	}

	rec, err := svc.store.Upsert(models.Attendance{
		StudentID:      studentID,
		ClassSectionID: classSectionID,
		Date:           day.Format(models.DateLayout),
		Status:         status,
		TeacherID:      teacherID,
		QuarterID:      quarterID,
		RecordedAt:     now,
	})
	if err != nil {
		return models.Attendance{}, MonthView{}, storeErr("attendance.upsert", err)
	}

	view, err := svc.GetMonthView(studentID, classSectionID, day.Year(), day.Month(), now)
	if err != nil {
		return models.Attendance{}, MonthView{}, err
	}
	return rec, view, nil
}

func requireIDs(studentID, classSectionID uint) error {
	if studentID == 0 {
		return &ValidationError{Field: "student_id", Reason: "required"}
	}
	if classSectionID == 0 {
		return &ValidationError{Field: "class_section_id", Reason: "required"}
	}
	return nil
}
