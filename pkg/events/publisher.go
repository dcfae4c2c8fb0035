package events

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/serverio"
)

const QueueName = "events-queue"

type Publisher struct {
	Queue rmq.Queue
}

func NewPublisher(connection rmq.Connection) (*Publisher, error) {
	eventQueue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		Queue: eventQueue,
	}, nil
}

func (p *Publisher) Publish(eventType ferry.EventType, body interface{}) error {
	eventBytes, err := json.Marshal(ferry.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      body,
	})
	if err != nil {
		return err
	}

	return p.Queue.PublishBytes(eventBytes)
}

type registryUpdate struct {
	Routes    int `json:",omitempty"`
	Terminals int `json:",omitempty"`
	Alerts    int `json:",omitempty"`
}

// Attach publishes an event every time the client loads something from the server
func (p *Publisher) Attach(client *serverio.Client) {
	registries := client.Registries

	client.ScheduleListeners.Add(func() {
		p.publishOrLog(ferry.EventTypeScheduleUpdated, registryUpdate{Routes: len(registries.Routes.All())})
	})
	client.AlertListeners.Add(func() {
		p.publishOrLog(ferry.EventTypeAlertsUpdated, registryUpdate{Alerts: len(registries.Alerts.All())})
	})
	client.TravelTimeListeners.Add(func() {
		known := 0
		for _, terminal := range registries.Terminals.All() {
			if terminal.TravelTime.Known {
				known++
			}
		}
		p.publishOrLog(ferry.EventTypeTravelTimesUpdated, registryUpdate{Terminals: known})
	})

	previous := client.NewAlertHandler
	client.NewAlertHandler = func(alert ferry.Alert) {
		if previous != nil {
			previous(alert)
		}

		log.Info().Str("id", alert.ID).Msg("New alert received")
		p.publishOrLog(ferry.EventTypeAlertCreated, alert)
	}
}

func (p *Publisher) publishOrLog(eventType ferry.EventType, body interface{}) {
	if err := p.Publish(eventType, body); err != nil {
		log.Error().Err(err).Str("type", string(eventType)).Msg("Failed to publish event")
	}
}
