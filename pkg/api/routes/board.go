package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/board"
)

func BoardHandler(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows := board.Build(application.Registries, board.Options{
			Formatter:     application.Formatter,
			BufferMinutes: application.BufferMinutes,
			Limit:         c.QueryInt("limit", 5),
		})

		return c.JSON(rows)
	}
}
