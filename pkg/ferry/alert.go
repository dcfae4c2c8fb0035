package ferry

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const alertSeparator = "\n__"

type Alert struct {
	ID     string    `groups:"basic"`
	Codes  RouteMask `groups:"basic"`
	Body   string    `groups:"basic"`
	Unread bool      `groups:"basic"`
}

func (a *Alert) Matches(route *Route) bool {
	return a.Codes.Intersects(route.Code)
}

// AlertRegistry holds the current alert list and remembers which alert ids the rider has read
type AlertRegistry struct {
	mu      sync.RWMutex
	alerts  []*Alert
	readIDs []string
}

func NewAlertRegistry() *AlertRegistry {
	return &AlertRegistry{}
}

func (r *AlertRegistry) All() []Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := make([]Alert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		alerts = append(alerts, *alert)
	}

	return alerts
}

func (r *AlertRegistry) AlertsFor(route *Route) []Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []Alert{}
	for _, alert := range r.alerts {
		if alert.Matches(route) {
			result = append(result, *alert)
		}
	}

	return result
}

func (r *AlertRegistry) HasAlerts(route *Route, unreadOnly bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, alert := range r.alerts {
		if alert.Matches(route) && (alert.Unread || !unreadOnly) {
			return true
		}
	}

	return false
}

// LoadAll replaces the alert list with the alerts in text and reapplies read state.
// Read ids that no longer have an alert are forgotten.
// Returns the alerts whose ids were not in the previous list.
func (r *AlertRegistry) LoadAll(text string) []Alert {
	alerts := ParseAlerts(text)

	r.mu.Lock()
	defer r.mu.Unlock()

	previousIDs := map[string]bool{}
	for _, alert := range r.alerts {
		previousIDs[alert.ID] = true
	}

	r.alerts = alerts

	oldReadIDs := r.readIDs
	r.readIDs = nil
	for _, id := range oldReadIDs {
		for _, alert := range r.alerts {
			if alert.ID == id {
				alert.Unread = false
				r.readIDs = append(r.readIDs, id)
				break
			}
		}
	}

	newAlerts := []Alert{}
	for _, alert := range r.alerts {
		if !previousIDs[alert.ID] {
			newAlerts = append(newAlerts, *alert)
		}
	}

	return newAlerts
}

// MarkRead flags the alert as read and remembers its id. Returns false if there is no such alert.
func (r *AlertRegistry) MarkRead(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alert := range r.alerts {
		if alert.ID == id {
			alert.Unread = false

			if !slices.Contains(r.readIDs, id) {
				r.readIDs = append(r.readIDs, id)
			}

			return true
		}
	}

	return false
}

func (r *AlertRegistry) ReadIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.readIDs)
}

// RestoreReadIDs seeds the read list, typically from local storage before the first alert load
func (r *AlertRegistry) RestoreReadIDs(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readIDs = nil
	for _, id := range ids {
		if id != "" && !slices.Contains(r.readIDs, id) {
			r.readIDs = append(r.readIDs, id)
		}
	}

	for _, alert := range r.alerts {
		if slices.Contains(r.readIDs, alert.ID) {
			alert.Unread = false
		}
	}
}

// ParseAlerts splits an alert payload into alerts.
// Records are separated by "__" at the start of a line, the first line of each record is "<id> <mask>".
func ParseAlerts(text string) []*Alert {
	alerts := []*Alert{}

	for _, block := range strings.Split(text, alertSeparator) {
		block = strings.TrimLeft(block, "\r\n")
		if strings.TrimSpace(block) == "" {
			continue
		}

		header, body, _ := strings.Cut(block, "\n")
		fields := strings.Fields(header)
		if len(fields) == 0 {
			continue
		}

		alert := &Alert{
			ID:     fields[0],
			Body:   strings.TrimRight(body, "\r\n"),
			Unread: true,
		}

		if len(fields) > 1 {
			mask, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				log.Debug().Err(err).Str("alert", alert.ID).Msg("Alert has an unreadable route mask")
			} else {
				alert.Codes = RouteMask(mask)
			}
		}

		alerts = append(alerts, alert)
	}

	return alerts
}
