package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Expirer closes sessions idle for longer than ttl.
type Expirer interface {
	ExpireIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// Sweeper periodically tears down idle view sessions.
type Sweeper struct {
	cron    *cron.Cron
	expirer Expirer
	ttl     time.Duration
}

// NewSweeper schedules the sweep. schedule accepts standard cron
// expressions and descriptors such as "@every 1m".
func NewSweeper(schedule string, ttl time.Duration, expirer Expirer) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		expirer: expirer,
		ttl:     ttl,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("failed to add sweep job: %w", err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Sweeper) Start() {
	log.Info().Dur("ttl", s.ttl).Msg("session sweeper started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("session sweeper stopped")
}

// Sweep runs one expiry pass.
func (s *Sweeper) Sweep() {
	if _, err := s.expirer.ExpireIdle(context.Background(), s.ttl); err != nil {
		log.Error().Err(err).Msg("session sweep failed")
	}
}
