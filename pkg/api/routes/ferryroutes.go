package routes

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/board"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
)

func FerryRoutesRouter(router fiber.Router, application *app.Application) {
	router.Get("/", listRoutes(application))
	router.Get("/:name", getRoute(application))
	router.Get("/:name/departures", getRouteDepartures(application))
	router.Get("/:name/alerts", getRouteAlerts(application))
}

func findRoute(c *fiber.Ctx, application *app.Application) (*ferry.Route, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return nil, c.JSON(fiber.Map{
			"error": "Route name is not valid",
		})
	}

	route, ok := application.Registries.Routes.Find(name)
	if !ok {
		c.SendStatus(fiber.StatusNotFound)
		return nil, c.JSON(fiber.Map{
			"error": "Could not find Route matching name",
		})
	}

	return route, nil
}

func listRoutes(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes := []*ferry.Route{}
		for _, route := range application.Registries.Routes.All() {
			routes = append(routes, application.Registries.Routes.Snapshot(route))
		}

		routesReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, routes)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Routes",
			})
		}

		return c.JSON(routesReduced)
	}
}

func getRoute(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := findRoute(c, application)
		if route == nil {
			return err
		}

		routeReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, application.Registries.Routes.Snapshot(route))
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Route",
			})
		}

		return c.JSON(routeReduced)
	}
}

func getRouteDepartures(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := findRoute(c, application)
		if route == nil {
			return err
		}

		directions := ferry.Directions
		if directionQuery := c.Query("direction"); directionQuery != "" {
			direction, err := ferry.ParseDirection(directionQuery)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			directions = []ferry.Direction{direction}
		}

		var scheduleType ferrytime.ScheduleType
		if scheduleQuery := c.Query("schedule"); scheduleQuery != "" {
			scheduleType, err = ferrytime.ParseScheduleType(scheduleQuery)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": err.Error(),
				})
			}
		}

		rows := []board.Row{}
		for _, direction := range directions {
			if scheduleType == "" {
				rows = append(rows, board.BuildRow(application.Registries, board.Options{
					Formatter:     application.Formatter,
					BufferMinutes: application.BufferMinutes,
					Limit:         c.QueryInt("limit", 0),
				}, route, direction))
			} else {
				rows = append(rows, board.Timetable(application.Registries, application.Formatter, route, direction, scheduleType))
			}
		}

		return c.JSON(rows)
	}
}

func getRouteAlerts(application *app.Application) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := findRoute(c, application)
		if route == nil {
			return err
		}

		return c.JSON(application.Registries.Alerts.AlertsFor(route))
	}
}
