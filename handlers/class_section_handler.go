package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/studentplus/schoolportal/database"
	"github.com/studentplus/schoolportal/models"
)

type ClassSectionHandler struct{}

func NewClassSectionHandler() *ClassSectionHandler { return &ClassSectionHandler{} }

type classSectionPayload struct {
	Name         string `json:"name" validate:"required,max=80"`
	AcademicYear string `json:"academic_year" validate:"required,len=4,numeric"`
	TeacherID    any    `json:"teacher_id" validate:"required"` // FE may send number or teacher_code string
}

// accept teacher_id as a numeric id or a teacher_code
func resolveTeacherID(v any) (uint, bool) {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return 0, false
		}
		return uint(t), true
	case int:
		if t <= 0 {
			return 0, false
		}
		return uint(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return uint(n), true
		}
		var teacher models.Teacher
		if err := database.DB.First(&teacher, "teacher_code = ?", s).Error; err == nil && teacher.ID > 0 {
			return teacher.ID, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ========== List ==========
func (h *ClassSectionHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page, size := 1, 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		if v < 1 {
			size = 1
		} else if v > 100 {
			size = 100
		} else {
			size = v
		}
	}

	var items []models.ClassSection
	tx := database.DB.Model(&models.ClassSection{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR academic_year ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	// attach teacher_name for the tables (optional)
	if len(items) > 0 {
		var ts []models.Teacher
		if err := database.DB.Find(&ts).Error; err == nil {
			name := map[uint]string{}
			for _, t := range ts {
				name[t.ID] = strings.TrimSpace(t.FirstName + " " + t.LastName)
			}
			type out struct {
				models.ClassSection
				TeacherName string `json:"teacher_name"`
			}
			resp := make([]out, 0, len(items))
			for _, r := range items {
				resp = append(resp, out{ClassSection: r, TeacherName: name[r.TeacherID]})
			}
			return c.JSON(http.StatusOK, map[string]any{"data": resp, "page": page, "size": size, "total": total})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}

// ========== Get ==========
func (h *ClassSectionHandler) Get(c echo.Context) error {
	id := c.Param("id")
	var r models.ClassSection
	if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, r)
}

// ========== Roster ==========
func (h *ClassSectionHandler) Roster(c echo.Context) error {
	id := atouintOr(c.Param("id"), 0)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	roster, err := database.NewRosterStore(database.DB).GetClassRoster(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": roster, "count": len(roster)})
}

// ========== Create ==========
func (h *ClassSectionHandler) Create(c echo.Context) error {
	var p classSectionPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
	if err := c.Validate(&p); err != nil {
		return err
	}
	tid, ok := resolveTeacherID(p.TeacherID)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"teacher_id": "unknown teacher"}})
	}

	// one section name per academic year
	var cnt int64
	database.DB.Model(&models.ClassSection{}).
		Where("name = ? AND academic_year = ?", p.Name, p.AcademicYear).
		Count(&cnt)
	if cnt > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUP_SECTION"})
	}

	r := models.ClassSection{
		Name:         p.Name,
		AcademicYear: p.AcademicYear,
		TeacherID:    tid,
	}
	if err := database.DB.Create(&r).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, r)
}

// ========== Update ==========
func (h *ClassSectionHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var cur models.ClassSection
	if err := database.DB.First(&cur, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p classSectionPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
	if err := c.Validate(&p); err != nil {
		return err
	}
	tid, ok := resolveTeacherID(p.TeacherID)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"teacher_id": "unknown teacher"}})
	}

	var cnt int64
	database.DB.Model(&models.ClassSection{}).
		Where("name = ? AND academic_year = ? AND id <> ?", p.Name, p.AcademicYear, cur.ID).
		Count(&cnt)
	if cnt > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUP_SECTION"})
	}

	cur.Name = p.Name
	cur.AcademicYear = p.AcademicYear
	cur.TeacherID = tid

	if err := database.DB.Save(&cur).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, cur)
}

// ========== Delete ==========
func (h *ClassSectionHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := database.DB.Delete(&models.ClassSection{}, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
