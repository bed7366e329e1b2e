package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studentplus/schoolportal/services"
)

type ReportHandler struct {
	agg    *services.ReportAggregator
	writer services.WorkbookWriter
}

func NewReportHandler(agg *services.ReportAggregator, writer services.WorkbookWriter) *ReportHandler {
	return &ReportHandler{agg: agg, writer: writer}
}

type reportPayload struct {
	Selections []struct {
		ClassSectionID uint   `json:"class_section_id" validate:"required"`
		DisplayName    string `json:"display_name"`
	} `json:"selections" validate:"required,min=1,dive"`
	Period string `json:"period" validate:"required,oneof=weekly monthly"`
}

func (p reportPayload) selections() []services.ClassSelection {
	out := make([]services.ClassSelection, 0, len(p.Selections))
	for _, s := range p.Selections {
		out = append(out, services.ClassSelection{
			ClassSectionID: s.ClassSectionID,
			DisplayName:    s.DisplayName,
		})
	}
	return out
}

// POST /teacher/reports/attendance
// Builds the attendance matrix for the selected class sections.
func (h *ReportHandler) Build(c echo.Context) error {
	var req reportPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.agg.BuildReport(req.selections(), services.Period(req.Period), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// POST /teacher/reports/attendance/export
// Same selection payload, but streams the tabular document for download.
func (h *ReportHandler) Export(c echo.Context) error {
	var req reportPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.agg.BuildReport(req.selections(), services.Period(req.Period), time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	// serialise fully before committing the status: a writer error must
	// surface as a 5xx, never as a truncated 200 download
	var buf bytes.Buffer
	if err := h.writer.WriteWorkbook(&buf, services.ReportSheets(report)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("attendance_%s_%s.%s", report.StartDate, uuid.NewString()[:8], h.writer.FileExtension())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, h.writer.ContentType(), buf.Bytes())
}
