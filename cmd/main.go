package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/studentplus/schoolportal/config"
	"github.com/studentplus/schoolportal/database"
	"github.com/studentplus/schoolportal/handlers"
	"github.com/studentplus/schoolportal/routes"
)

func main() {
	cfg := config.Load()

	// fail fast if the database is not up
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewPayloadValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
