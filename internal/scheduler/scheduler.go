package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lunarialabs/lunaria/internal/weather"
)

// Scheduler runs background jobs. Currently that is only the periodic
// weather refresh; the cycle engine itself has no scheduled work since
// predictions are recomputed on every mutation.
type Scheduler struct {
	cron    *cron.Cron
	weather *weather.Service
	spec    string
	logger  *zap.Logger
}

func New(weatherService *weather.Service, spec string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = "*/30 * * * *"
	}
	return &Scheduler{
		cron:    cron.New(),
		weather: weatherService,
		spec:    spec,
		logger:  logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.refreshWeather); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("weather_refresh", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) refreshWeather() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.weather.Refresh(ctx); err != nil {
		s.logger.Warn("scheduled weather refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("weather cache refreshed")
}
