package events

import (
	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/ferry"
)

type BatchConsumer struct {
	Registries *ferry.Registries

	// Notify receives the text for every event a rider should hear about
	Notify func(ferry.EventNotificationData)
}

func NewBatchConsumer(registries *ferry.Registries) *BatchConsumer {
	return &BatchConsumer{
		Registries: registries,
		Notify: func(notification ferry.EventNotificationData) {
			log.Info().Str("title", notification.Title).Str("message", notification.Message).Msg("Notification")
		},
	}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		notification, ok, err := GetNotificationData(c.Registries, []byte(payload))
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		if ok {
			c.Notify(notification)
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}
