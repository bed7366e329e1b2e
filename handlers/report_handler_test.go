package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentplus/schoolportal/models"
	"github.com/studentplus/schoolportal/services"
)

type stubStore struct{}

func (stubStore) FetchForStudentAndMonth(studentID, classSectionID uint, year int, month time.Month) ([]models.Attendance, error) {
	return nil, nil
}

func (stubStore) FetchAllForStudent(studentID, classSectionID uint) ([]models.Attendance, error) {
	return nil, nil
}

func (stubStore) FetchForStudentAndRange(studentID, classSectionID uint, start, end string) ([]models.Attendance, error) {
	return nil, nil
}

func (stubStore) Upsert(rec models.Attendance) (models.Attendance, error) {
	return rec, nil
}

type stubRoster struct{}

func (stubRoster) GetClassRoster(classSectionID uint) ([]services.RosterEntry, error) {
	return []services.RosterEntry{{StudentID: 1, StudentCode: "S001", FullName: "Ada Apple"}}, nil
}

type failingWriter struct{}

func (failingWriter) WriteWorkbook(w io.Writer, sheets []services.Sheet) error {
	return errors.New("disk full")
}
func (failingWriter) ContentType() string   { return "text/csv" }
func (failingWriter) FileExtension() string { return "csv" }

func exportContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	body := `{"selections":[{"class_section_id":10,"display_name":"1/1"}],"period":"weekly"}`
	req := httptest.NewRequest(http.MethodPost, "/teacher/reports/attendance/export", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReportExport(t *testing.T) {
	e := echo.New()
	e.Validator = NewPayloadValidator()
	agg := services.NewReportAggregator(stubStore{}, stubRoster{})

	t.Run("streams the workbook as an attachment", func(t *testing.T) {
		c, rec := exportContext(e)
		h := NewReportHandler(agg, services.CSVWorkbookWriter{})

		if err := h.Export(c); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
			t.Errorf("content type = %q, want text/csv", ct)
		}
		if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.HasPrefix(cd, "attachment; filename=") {
			t.Errorf("content disposition = %q", cd)
		}
		if !strings.Contains(rec.Body.String(), "Student Code,Student Name") {
			t.Errorf("body missing the header row:\n%s", rec.Body.String())
		}
	})

	t.Run("writer failure is a 5xx, not a truncated download", func(t *testing.T) {
		c, rec := exportContext(e)
		h := NewReportHandler(agg, failingWriter{})

		if err := h.Export(c); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "EXPORT_FAILED") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})
}
