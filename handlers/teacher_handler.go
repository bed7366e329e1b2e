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

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler { return &TeacherHandler{} }

type teacherPayload struct {
	TeacherCode string `json:"teacher_code" validate:"required,alphanum,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=50"`
}

func (p *teacherPayload) norm() {
	p.TeacherCode = strings.TrimSpace(p.TeacherCode)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

/*** CRUD ***/

// GET /admin/teachers?q=&page=&size=
func (h *TeacherHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	size := 20
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		if v < 1 {
			size = 1
		} else if v > 100 {
			size = 100
		} else {
			size = v
		}
	}

	var items []models.Teacher
	tx := database.DB.Model(&models.Teacher{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("teacher_code ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}

func (h *TeacherHandler) Get(c echo.Context) error {
	id := c.Param("id")
	var t models.Teacher
	if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if err := c.Validate(&p); err != nil {
		return err
	}

	// no duplicate code/email
	var cnt int64
	database.DB.Model(&models.Teacher{}).
		Where("teacher_code = ? OR LOWER(email) = ?", p.TeacherCode, p.Email).
		Count(&cnt)
	if cnt > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUP_CODE_OR_EMAIL"})
	}

	t := models.Teacher{
		TeacherCode: p.TeacherCode,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
	}
	if err := database.DB.Create(&t).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TeacherHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var cur models.Teacher
	if err := database.DB.First(&cur, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if err := c.Validate(&p); err != nil {
		return err
	}

	var cnt int64
	database.DB.Model(&models.Teacher{}).
		Where("(teacher_code = ? OR LOWER(email) = ?) AND id <> ?", p.TeacherCode, p.Email, cur.ID).
		Count(&cnt)
	if cnt > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUP_CODE_OR_EMAIL"})
	}

	cur.TeacherCode = p.TeacherCode
	cur.FirstName = p.FirstName
	cur.LastName = p.LastName
	cur.Email = p.Email

	if err := database.DB.Save(&cur).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, cur)
}

func (h *TeacherHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := database.DB.Delete(&models.Teacher{}, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
