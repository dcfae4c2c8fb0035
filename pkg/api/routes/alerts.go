package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/board"
)

func AlertsRouter(router fiber.Router, application *app.Application) {
	router.Get("/", listAlerts(application))
	router.Post("/:id/read", markAlertRead(application))
}

func listAlerts(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := board.FilterAlerts(application.Registries, board.AlertFilter{
			RouteName: c.Query("route"),
			Where:     c.Query("where"),
		})
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(alerts)
	}
}

func markAlertRead(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		found, err := application.Sync.MarkAlertRead(c.UserContext(), id)
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("Failed to save alert read list")
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not save read state",
			})
		}
		if !found {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find Alert matching ID",
			})
		}

		return c.JSON(fiber.Map{
			"id":     id,
			"unread": false,
		})
	}
}
