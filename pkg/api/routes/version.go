package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/nextferry/pkg/app"
)

func VersionHandler(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version":    "v0.1",
			"appversion": application.Config.AppVersion,
		})
	}
}
