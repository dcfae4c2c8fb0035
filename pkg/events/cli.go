package events

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/travigo/nextferry/pkg/config"
	"github.com/travigo/nextferry/pkg/consumer"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

var errNoRedis = errors.New("events need a redis address")

func connect(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Address == "" {
		return nil, errNoRedis
	}

	return cfg, redis_client.Connect(redis_client.Options{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		Database: cfg.Redis.Database,
	})
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events consumer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "address for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := connect(c)
					if err != nil {
						return err
					}

					location, err := cfg.TimeLocation()
					if err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(ferry.NewRegistries(&ferrytime.SystemClock{Location: location})),
						Connection:      redis_client.QueueConnection,
						RedisClient:     redis_client.Client,
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test alert event",
				Action: func(c *cli.Context) error {
					if _, err := connect(c); err != nil {
						return err
					}

					publisher, err := NewPublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					return publisher.Publish(ferry.EventTypeAlertCreated, ferry.Alert{
						ID:     "test",
						Codes:  ferry.MaskOf(ferry.RouteBainbridge),
						Body:   "Bainbridge sailings are delayed by about 20 minutes",
						Unread: true,
					})
				},
			},
		},
	}
}
