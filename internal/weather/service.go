package weather

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service caches weather reports so the API can answer without hitting
// the upstream on every request. A stale report is better than none, so
// fetch failures fall back to the last good one.
type Service struct {
	client *Client
	logger *zap.Logger
	ttl    time.Duration

	mu     sync.Mutex
	cached Report
	valid  bool
}

func NewService(client *Client, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, ttl: ttl, logger: logger}
}

// Current returns the cached report, refreshing it when expired.
func (service *Service) Current(ctx context.Context) (Report, error) {
	service.mu.Lock()
	if service.valid && time.Since(service.cached.FetchedAt) < service.ttl {
		cached := service.cached
		service.mu.Unlock()
		return cached, nil
	}
	service.mu.Unlock()

	return service.Refresh(ctx)
}

// Refresh fetches a fresh report unconditionally. On failure the last
// good report is returned alongside the error.
func (service *Service) Refresh(ctx context.Context) (Report, error) {
	report, err := service.client.Fetch(ctx)
	if err != nil {
		service.logger.Warn("weather refresh failed", zap.Error(err))
		service.mu.Lock()
		defer service.mu.Unlock()
		if service.valid {
			return service.cached, err
		}
		return Report{}, err
	}

	service.mu.Lock()
	service.cached = report
	service.valid = true
	service.mu.Unlock()
	return report, nil
}
