package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const sweepTimeout = 5 * time.Minute

type QuoteExpirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// QuoteExpiryScheduler runs the quote expiry sweep on a cron schedule.
type QuoteExpiryScheduler struct {
	cron    *cron.Cron
	expirer QuoteExpirer
	log     zerolog.Logger
}

func NewQuoteExpiryScheduler(expirer QuoteExpirer, schedule string, log zerolog.Logger) (*QuoteExpiryScheduler, error) {
	s := &QuoteExpiryScheduler{
		cron:    cron.New(),
		expirer: expirer,
		log:     log.With().Str("component", "quote_expiry").Logger(),
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid quote expiry schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *QuoteExpiryScheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("quote expiry scheduler started")
}

// Stop waits for a running sweep to finish.
func (s *QuoteExpiryScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("quote expiry scheduler stopped")
}

func (s *QuoteExpiryScheduler) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	expired, err := s.expirer.ExpireStale(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("expired", expired).Msg("quote expiry sweep finished with errors")
		return
	}
	s.log.Debug().Int("expired", expired).Msg("quote expiry sweep finished")
}
