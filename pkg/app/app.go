package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/config"
	"github.com/travigo/nextferry/pkg/events"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/localstore"
	"github.com/travigo/nextferry/pkg/redis_client"
	"github.com/travigo/nextferry/pkg/serverio"
)

// Application is everything a command needs: the ferry model, how to display it and how to keep it current
type Application struct {
	Config *config.Config
	Clock  ferrytime.Clock

	Registries *ferry.Registries
	Formatter  *ferrytime.Formatter
	Store      localstore.Store
	Sync       *serverio.Client
	Publisher  *events.Publisher

	BufferMinutes int
}

// New builds the application from cfg. A nil clock uses the wall clock in the configured timezone.
// Redis is used for local storage (and events, if enabled) when an address is configured.
func New(ctx context.Context, cfg *config.Config, clock ferrytime.Clock) (*Application, error) {
	if clock == nil {
		location, err := cfg.TimeLocation()
		if err != nil {
			return nil, err
		}
		clock = &ferrytime.SystemClock{Location: location}
	}

	bufferMinutes, err := cfg.BufferMinutes()
	if err != nil {
		return nil, err
	}

	var store localstore.Store
	if cfg.Redis.Address != "" {
		if err := redis_client.Connect(redis_client.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
		}); err != nil {
			return nil, err
		}

		store = localstore.NewRedisStore(redis_client.Client)
	} else {
		log.Debug().Msg("No redis configured, keeping local state in memory")
		store = localstore.NewMemoryStore()
	}

	if err := localstore.SetBool(ctx, store, localstore.KeyUseLocation, cfg.UseLocation); err != nil {
		return nil, err
	}

	registries := ferry.NewRegistries(clock)

	application := &Application{
		Config:        cfg,
		Clock:         clock,
		Registries:    registries,
		Formatter:     ferrytime.NewFormatter(cfg.TwelveHour()),
		Store:         store,
		Sync:          serverio.NewClient(cfg.ServerURL, cfg.AppVersion, registries, store),
		BufferMinutes: bufferMinutes,
	}

	if cfg.Redis.Events {
		if redis_client.QueueConnection == nil {
			log.Warn().Msg("Events are enabled but there is no redis connection")
		} else {
			publisher, err := events.NewPublisher(redis_client.QueueConnection)
			if err != nil {
				return nil, err
			}

			publisher.Attach(application.Sync)
			application.Publisher = publisher
		}
	}

	if err := application.Sync.RestoreFromCache(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to restore from local cache")
	}

	return application, nil
}

// RequestTravelTimes asks for travel times from the configured location, if there is one
func (a *Application) RequestTravelTimes(ctx context.Context) error {
	location, ok, err := a.Config.CurrentLocation()
	if err != nil || !ok {
		return err
	}

	return a.Sync.RequestTravelTimes(ctx, location)
}
