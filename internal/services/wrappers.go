package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
	"golang.org/x/time/rate"
)

type delayedSource struct {
	next  ListSource
	delay time.Duration
}

// Delayed waits d before every load. A non-positive d returns next unchanged.
func Delayed(next ListSource, d time.Duration) ListSource {
	if d <= 0 {
		return next
	}
	return &delayedSource{next: next, delay: d}
}

func (s *delayedSource) Name() string { return s.next.Name() }

func (s *delayedSource) Load(ctx context.Context) ([]models.List, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
	case <-timer.C:
	}

	return s.next.Load(ctx)
}

type throttledSource struct {
	next    ListSource
	limiter *rate.Limiter
}

// Throttled gates every load on limiter. A nil limiter returns next unchanged.
func Throttled(next ListSource, limiter *rate.Limiter) ListSource {
	if limiter == nil {
		return next
	}
	return &throttledSource{next: next, limiter: limiter}
}

// PerMinute builds a limiter allowing n loads per minute with a burst of one, or nil for n <= 0.
func PerMinute(n int) *rate.Limiter {
	if n <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
}

func (s *throttledSource) Name() string { return s.next.Name() }

func (s *throttledSource) Load(ctx context.Context) ([]models.List, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return s.next.Load(ctx)
}

// FromConfig assembles the source described by cfg: a file when configured, the HTTP endpoint otherwise,
// wrapped with the configured throttle and delay.
func FromConfig(cfg shared.SourceConfig, client *http.Client) ListSource {
	var src ListSource
	if cfg.File != "" {
		src = NewFileListSource(cfg.File)
	} else {
		if client == nil {
			client = &http.Client{Timeout: cfg.Timeout()}
		}
		src = NewHTTPListSource(cfg.BaseURL, cfg.Path, client)
	}

	return Delayed(Throttled(src, PerMinute(cfg.RetryPerMinute)), cfg.Delay())
}
