package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	mu    sync.Mutex
	calls int
	ttls  []time.Duration
	err   error
}

func (c *countingExpirer) ExpireIdle(ctx context.Context, ttl time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.ttls = append(c.ttls, ttl)
	return 0, c.err
}

func TestNewSweeper_InvalidSchedule(t *testing.T) {
	_, err := NewSweeper("every now and then", time.Minute, &countingExpirer{})
	require.Error(t, err)
}

func TestSweeper_SweepPassesTTL(t *testing.T) {
	exp := &countingExpirer{}
	s, err := NewSweeper("@every 1h", 15*time.Minute, exp)
	require.NoError(t, err)

	s.Sweep()
	exp.err = errors.New("boom")
	s.Sweep()

	require.Equal(t, 2, exp.calls)
	require.Equal(t, []time.Duration{15 * time.Minute, 15 * time.Minute}, exp.ttls)
}

func TestSweeper_StartStop(t *testing.T) {
	s, err := NewSweeper("@every 1h", time.Minute, &countingExpirer{})
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
