package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/nextferry/pkg/app"
	"github.com/travigo/nextferry/pkg/ferrytime"
	"github.com/travigo/nextferry/pkg/serverio"
)

// Syncer keeps the application's registries current by polling the server every RefreshRate
type Syncer struct {
	App         *app.Application
	RefreshRate time.Duration

	serviceDay time.Time
}

func New(application *app.Application, refreshRate time.Duration) *Syncer {
	return &Syncer{
		App:         application,
		RefreshRate: refreshRate,
		serviceDay:  ferrytime.ServiceDay(application.Clock.Now()),
	}
}

func (s *Syncer) Run(ctx context.Context) {
	log.Info().Str("refresh", s.RefreshRate.String()).Msg("Starting sync")

	for {
		startTime := time.Now()

		if err := s.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("Sync failed")
		}

		executionDuration := time.Since(startTime)
		waitTime := s.RefreshRate - executionDuration
		if waitTime < 0 {
			waitTime = 0
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping sync")
			return
		case <-time.After(waitTime):
		}
	}
}

// RunOnce fetches updates and travel times, and starts a new schedule day once the morning cutoff has passed
func (s *Syncer) RunOnce(ctx context.Context) error {
	s.checkServiceDay()

	if err := s.App.Sync.RequestUpdate(ctx); err != nil {
		return err
	}

	if err := s.App.RequestTravelTimes(ctx); err != nil && !errors.Is(err, serverio.ErrTravelTimesSkipped) {
		return err
	}

	return nil
}

func (s *Syncer) checkServiceDay() {
	serviceDay := ferrytime.ServiceDay(s.App.Clock.Now())
	if serviceDay.Equal(s.serviceDay) {
		return
	}

	log.Info().Time("serviceDay", serviceDay).Msg("Service day changed")

	s.serviceDay = serviceDay
	s.App.Registries.Routes.ResetScheduleType()
}
