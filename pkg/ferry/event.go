package ferry

import (
	"fmt"
	"strings"
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeScheduleUpdated    EventType = "ScheduleUpdated"
	EventTypeTravelTimesUpdated EventType = "TravelTimesUpdated"
	EventTypeAlertsUpdated      EventType = "AlertsUpdated"
	EventTypeAlertCreated       EventType = "AlertCreated"
)

type EventNotificationData struct {
	Title   string
	Message string
}

// AlertNotificationData builds the rider facing text for a new alert
func (r *Registries) AlertNotificationData(alert Alert) EventNotificationData {
	var routeNames []string

	for _, route := range r.Routes.All() {
		if alert.Matches(route) {
			routeNames = append(routeNames, route.Name())
		}
	}

	title := "Ferry alert"
	if len(routeNames) > 0 {
		title = fmt.Sprintf("Alert for %s", strings.Join(routeNames, ", "))
	}

	return EventNotificationData{
		Title:   title,
		Message: alert.Body,
	}
}
