package consumer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer

	Connection  rmq.Connection
	RedisClient *redis.Client

	// StatsListen is the address of the queue stats server, empty to not run one
	StatsListen string
}

func (c *RedisConsumer) Setup() error {
	if err := c.startConsumers(); err != nil {
		return err
	}

	if c.StatsListen != "" {
		go c.startStatsServer()
	}

	return nil
}

func (c *RedisConsumer) startConsumers() error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := c.Connection.OpenQueue(c.QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", c.QueueName, i), int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return err
		}
	}

	return nil
}

func (c *RedisConsumer) startStatsServer() {
	endpoint := fmt.Sprintf("/%s/stats", c.QueueName)

	mux := http.NewServeMux()
	mux.Handle(endpoint, NewStatsHandler(c.Connection))
	mux.Handle("/health", NewHealthHandler(c.RedisClient))

	log.Info().Msgf("Stats server listening on http://%s%s", c.StatsListen, endpoint)
	if err := http.ListenAndServe(c.StatsListen, mux); err != nil {
		log.Error().Err(err).Msg("Stats server stopped")
	}
}
