package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs every request at a level picked from its status code.
// Requests for paths in quiet are only logged at debug level.
func NewLogger(quiet ...string) fiber.Handler {
	quietPaths := map[string]bool{}
	for _, path := range quiet {
		quietPaths[path] = true
	}

	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()

			// let the error handler set the status before it is logged
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("latency", time.Since(startTime).String()).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		var event *zerolog.Event
		switch {
		case quietPaths[c.Path()] && code < fiber.StatusBadRequest:
			event = requestLogger.Debug()
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			event = requestLogger.Warn()
		case code >= fiber.StatusInternalServerError:
			event = requestLogger.Error()
		default:
			event = requestLogger.Info()
		}
		event.Msg(msg)

		return nil
	}
}
