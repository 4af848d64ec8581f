package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// DefaultAnalysisDelay is the simulated processing time.
const DefaultAnalysisDelay = 2 * time.Second

// errStaleAnalysis rejects a completion for an analysis the session no longer runs.
var errStaleAnalysis = errors.New("analysis no longer current")

// ClassificationService runs the simulated ripeness analysis.
type ClassificationService struct {
	repo         port.SessionRepository
	outcomes     port.OutcomeSource
	clock        port.Clock
	delay        time.Duration
	historyLimit int

	inflight sync.WaitGroup
}

// NewClassificationService creates the service.
func NewClassificationService(repo port.SessionRepository, outcomes port.OutcomeSource, clock port.Clock, delay time.Duration, historyLimit int) *ClassificationService {
	if historyLimit <= 0 {
		historyLimit = entity.DefaultHistoryLimit
	}
	return &ClassificationService{
		repo:         repo,
		outcomes:     outcomes,
		clock:        clock,
		delay:        delay,
		historyLimit: historyLimit,
	}
}

// Submit starts an analysis for the session.
//
// ok is false, and the session unchanged, when no image is selected or an
// analysis is already running. Otherwise the returned channel receives the
// final session state once the delay has elapsed, then closes. The analysis
// cannot be cancelled; ctx only scopes the initial state change. If the
// session is closed meanwhile, even if it is reopened under the same ID, the
// channel closes without a value.
func (s *ClassificationService) Submit(ctx context.Context, id string) (done <-chan entity.Session, ok bool, err error) {
	analysisID := uuid.NewString()
	var started bool
	_, err = s.repo.Update(ctx, id, func(cur entity.Session) (entity.Session, error) {
		next, began := cur.BeginAnalysis(analysisID, s.clock.Now())
		started = began
		return next, nil
	})
	if err != nil {
		return nil, false, err
	}
	if !started {
		log.Debug().Str("session", id).Msg("submit ignored")
		return nil, false, nil
	}

	// arm the timer before returning so virtual clocks can be advanced right away
	timer := s.clock.After(s.delay)
	result := make(chan entity.Session, 1)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer close(result)

		<-timer
		outcome := s.outcomes.Draw()

		final, err := s.repo.Update(context.Background(), id, func(cur entity.Session) (entity.Session, error) {
			next, current := cur.CompleteAnalysis(analysisID, outcome, s.historyLimit, s.clock.Now())
			if !current {
				return cur, errStaleAnalysis
			}
			return next, nil
		})
		if err != nil {
			log.Warn().Err(err).Str("session", id).Str("analysis", analysisID).Msg("analysis finished for a closed session")
			return
		}

		log.Info().Str("session", id).Str("analysis", analysisID).Str("outcome", outcome.String()).Msg("analysis complete")
		result <- final
	}()

	log.Info().Str("session", id).Dur("delay", s.delay).Msg("analysis started")
	return result, true, nil
}

// Wait blocks until every running analysis has finished.
func (s *ClassificationService) Wait() {
	s.inflight.Wait()
}
