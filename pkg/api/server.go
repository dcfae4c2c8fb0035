package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/nextferry/pkg/api/routes"
	"github.com/travigo/nextferry/pkg/app"
)

func NewServer(application *app.Application) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger("/core/version"))

	group := webApp.Group("/core")

	group.Get("version", routes.VersionHandler(application))
	group.Get("board", routes.BoardHandler(application))

	routes.FerryRoutesRouter(group.Group("/routes"), application)
	routes.TerminalsRouter(group.Group("/terminals"), application)
	routes.AlertsRouter(group.Group("/alerts"), application)

	return webApp
}

func SetupServer(listen string, application *app.Application) error {
	return NewServer(application).Listen(listen)
}
