package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/studentplus/schoolportal/config"
	"github.com/studentplus/schoolportal/database"
	"github.com/studentplus/schoolportal/handlers"
	"github.com/studentplus/schoolportal/middlewares"
	"github.com/studentplus/schoolportal/services"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Services over the GORM stores =====
	store := database.NewAttendanceStore(database.DB)
	roster := database.NewRosterStore(database.DB)
	attSvc := services.NewAttendanceService(store)
	reports := services.NewReportAggregator(store, roster)

	// ===== Handlers (shared singletons) =====
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	sec := handlers.NewClassSectionHandler()
	att := handlers.NewAttendanceHandler(attSvc)
	rep := handlers.NewReportHandler(reports, services.CSVWorkbookWriter{})

	e.GET("/health", handlers.Health)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/students", std.List)
	admin.POST("/students", std.Create)
	admin.GET("/students/:id", std.Get)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.GET("/teachers/:id", tch.Get)
	admin.PUT("/teachers/:id", tch.Update)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.GET("/class-sections", sec.List)
	admin.POST("/class-sections", sec.Create)
	admin.GET("/class-sections/:id", sec.Get)
	admin.GET("/class-sections/:id/roster", sec.Roster)
	admin.PUT("/class-sections/:id", sec.Update)
	admin.DELETE("/class-sections/:id", sec.Delete)

	// ===== Teacher routes =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole("teacher", "admin"))

	teacher.GET("/students", std.List)
	teacher.GET("/class-sections", sec.List)
	teacher.GET("/class-sections/:id/roster", sec.Roster)

	teacher.GET("/attendance/month", att.MonthView)
	teacher.POST("/attendance/mark", att.Mark)

	teacher.POST("/reports/attendance", rep.Build)
	teacher.POST("/reports/attendance/export", rep.Export)

	// ===== Parent routes (read-only calendar for their children) =====
	parent := e.Group("/parent", authMW, middlewares.RequireRole("parent"))
	parent.GET("/attendance/month", att.MonthView)

	// ===== Student routes (own calendar) =====
	student := e.Group("/student", authMW, middlewares.RequireRole("student"))
	student.GET("/attendance/month", att.MonthView)
}
