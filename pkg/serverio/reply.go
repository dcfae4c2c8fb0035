package serverio

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/localstore"
)

const (
	sectionSeparator = "\n#"

	headerSchedule    = "schedule"
	headerSpecial     = "special"
	headerTravelTimes = "traveltimes"
	headerAllAlerts   = "allalerts"
)

type section struct {
	Header string
	Body   string
}

func splitSections(reply string) []section {
	chunks := strings.Split(reply, sectionSeparator)
	if len(chunks) > 0 {
		chunks[0] = strings.TrimPrefix(chunks[0], "#")
	}

	sections := make([]section, 0, len(chunks))
	for _, chunk := range chunks {
		header, body, _ := strings.Cut(chunk, "\n")

		sections = append(sections, section{
			Header: strings.TrimRight(header, "\r "),
			Body:   body,
		})
	}

	return sections
}

// ProcessReply walks the '#' headed sections of a server reply and loads each one it knows about.
// Unknown sections are ignored.
func (c *Client) ProcessReply(ctx context.Context, reply string) {
	for _, section := range splitSections(reply) {
		switch {
		case strings.HasPrefix(section.Header, headerSchedule):
			c.LoadSchedule(section.Body, true)

			cacheDate := strings.TrimSpace(strings.TrimPrefix(section.Header, headerSchedule))
			if err := c.Store.Set(ctx, localstore.KeyCacheDate, cacheDate); err != nil {
				log.Error().Err(err).Msg("Failed to save cache date")
			}
			if err := c.Store.Set(ctx, localstore.KeyCache, section.Body); err != nil {
				log.Error().Err(err).Msg("Failed to save schedule cache")
			}
		case section.Header == headerSpecial:
			c.LoadSchedule(section.Body, false)
		case section.Header == headerTravelTimes:
			// location use may have been turned off while the request was out
			useLocation, err := localstore.GetBool(ctx, c.Store, localstore.KeyUseLocation)
			if err != nil {
				log.Error().Err(err).Msg("Failed to read location setting")
				continue
			}
			if useLocation {
				c.LoadTravelTimes(section.Body)
			}
		case section.Header == headerAllAlerts:
			c.LoadAlerts(ctx, section.Body)
		default:
			log.Debug().Str("header", section.Header).Msg("Ignoring reply section")
		}
	}
}

// LoadSchedule loads one timetable per line. A full load clears every route's times first.
// Lines of two characters or fewer, and lines starting with '/', are skipped.
func (c *Client) LoadSchedule(text string, full bool) {
	if full {
		c.Registries.Routes.ClearAllTimes()
	}

	loaded := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) <= 2 || strings.HasPrefix(line, "/") {
			continue
		}

		if err := c.Registries.Routes.LoadTimes(line); err != nil {
			log.Error().Err(err).Msg("Skipping schedule line")
			continue
		}
		loaded++
	}

	c.Registries.Routes.ResetScheduleType()

	log.Info().Int("timetables", loaded).Bool("full", full).Msg("Loaded schedule")

	c.ScheduleListeners.Fire()
}

func (c *Client) LoadAlerts(ctx context.Context, text string) {
	newAlerts := c.Registries.Alerts.LoadAll(text)

	if err := c.saveReadList(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to save alert read list")
	}

	log.Info().Int("alerts", len(c.Registries.Alerts.All())).Int("new", len(newAlerts)).Msg("Loaded alerts")

	if c.NewAlertHandler != nil {
		for _, alert := range newAlerts {
			c.NewAlertHandler(alert)
		}
	}

	c.AlertListeners.Fire()
}

func (c *Client) LoadTravelTimes(text string) {
	travelTimes := ParseTravelTimes(text)
	c.Registries.Terminals.LoadTravelTimes(travelTimes)

	log.Info().Int("terminals", len(travelTimes)).Msg("Loaded travel times")

	c.TravelTimeListeners.Fire()
}
