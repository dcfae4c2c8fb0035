package redis_client

import (
	"context"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const queueConnectionTag = "nextferry"

type Options struct {
	Address  string
	Password string
	Database int
}

func Connect(opts Options) error {
	if opts.Password == "" {
		Client = redis.NewClient(&redis.Options{
			Addr: opts.Address,
			DB:   opts.Database,
		})
	} else {
		Client = redis.NewClient(&redis.Options{
			Addr:     opts.Address,
			Password: opts.Password,
			DB:       opts.Database,
		})
	}

	statusCmd := Client.Ping(context.Background())
	err := statusCmd.Err()
	if err != nil {
		return err
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, nil)
	if err != nil {
		return err
	}

	log.Info().Str("address", opts.Address).Int("database", opts.Database).Msg("Connected to redis")

	return nil
}
