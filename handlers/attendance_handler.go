package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentplus/schoolportal/models"
	"github.com/studentplus/schoolportal/services"
)

type AttendanceHandler struct {
	svc *services.AttendanceService
}

func NewAttendanceHandler(svc *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// GET /teacher/attendance/month?student_id=&class_section_id=&year=2026&month=9
// Returns the calendar cells plus the monthly and overall percentages.
func (h *AttendanceHandler) MonthView(c echo.Context) error {
	studentID := atouintOr(c.QueryParam("student_id"), 0)
	classSectionID := atouintOr(c.QueryParam("class_section_id"), 0)

	now := time.Now()
	year := atoiOr(c.QueryParam("year"), now.Year())
	month := time.Month(atoiOr(c.QueryParam("month"), int(now.Month())))

	view, err := h.svc.GetMonthView(studentID, classSectionID, year, month, now)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

type markPayload struct {
	StudentID      uint   `json:"student_id" validate:"required"`
	ClassSectionID uint   `json:"class_section_id" validate:"required"`
	Date           string `json:"date" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=present late excused absent"`
	QuarterID      *uint  `json:"quarter_id,omitempty"`
}

// POST /teacher/attendance/mark
// Writes one status for one student/day and returns the refreshed month
// view so the calendar can re-render without a second round trip.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(models.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"date": "must be YYYY-MM-DD"}})
	}

	// the authenticated teacher is the recorder
	var teacherID *uint
	if uid, ok := c.Get("user_id").(uint); ok && uid > 0 {
		teacherID = &uid
	}

	rec, view, err := h.svc.SetDayStatus(
		req.StudentID, req.ClassSectionID, date,
		models.AttendanceStatus(req.Status), teacherID, req.QuarterID, time.Now(),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"record": rec,
		"view":   view,
	})
}
