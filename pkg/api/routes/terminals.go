package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/nextferry/pkg/app"
)

func TerminalsRouter(router fiber.Router, application *app.Application) {
	router.Get("/", listTerminals(application))
	router.Get("/:code", getTerminal(application))
}

func listTerminals(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		terminalsReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, application.Registries.Terminals.All())
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Terminals",
			})
		}

		return c.JSON(terminalsReduced)
	}
}

func getTerminal(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := c.ParamsInt("code")
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Terminal code must be a number",
			})
		}

		terminal, ok := application.Registries.Terminals.Get(code)
		if !ok {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find Terminal matching code",
			})
		}

		return c.JSON(terminal)
	}
}
