package events

import (
	"encoding/json"
	"fmt"

	"github.com/travigo/nextferry/pkg/ferry"
)

type queuedEvent struct {
	Type ferry.EventType
	Body json.RawMessage
}

// GetNotificationData turns a queued event into rider facing text.
// Events that riders don't get told about return ok false.
func GetNotificationData(registries *ferry.Registries, payload []byte) (ferry.EventNotificationData, bool, error) {
	var event queuedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return ferry.EventNotificationData{}, false, err
	}

	switch event.Type {
	case ferry.EventTypeAlertCreated:
		var alert ferry.Alert
		if err := json.Unmarshal(event.Body, &alert); err != nil {
			return ferry.EventNotificationData{}, false, fmt.Errorf("decoding alert: %w", err)
		}

		return registries.AlertNotificationData(alert), true, nil
	case ferry.EventTypeScheduleUpdated:
		return ferry.EventNotificationData{
			Title:   "Schedule updated",
			Message: "A new ferry schedule has been downloaded.",
		}, true, nil
	}

	return ferry.EventNotificationData{}, false, nil
}
