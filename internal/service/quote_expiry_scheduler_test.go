package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpirer struct {
	calls int
	err   error
}

func (s *stubExpirer) ExpireStale(context.Context) (int, error) {
	s.calls++
	return 1, s.err
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := NewQuoteExpiryScheduler(&stubExpirer{}, "every now and then", zerolog.Nop())
	assert.Error(t, err)
}

func TestSchedulerSweepCallsExpirer(t *testing.T) {
	expirer := &stubExpirer{err: errors.New("write failed")}
	scheduler, err := NewQuoteExpiryScheduler(expirer, "@every 1h", zerolog.Nop())
	require.NoError(t, err)

	scheduler.Sweep(context.Background())
	scheduler.Sweep(context.Background())
	assert.Equal(t, 2, expirer.calls)

	scheduler.Start()
	scheduler.Stop()
}
