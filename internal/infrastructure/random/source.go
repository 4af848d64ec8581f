package random

import (
	"math/rand"
	"sync"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// UniformSource draws each outcome with equal probability.
type UniformSource struct {
	outcomes []entity.Outcome
}

// NewUniformSource draws from the fixed outcome set.
func NewUniformSource() *UniformSource {
	return &UniformSource{outcomes: entity.Outcomes()}
}

func (s *UniformSource) Draw() entity.Outcome {
	return s.outcomes[rand.Intn(len(s.outcomes))]
}

// SequenceSource replays a fixed list of outcomes, cycling when exhausted.
type SequenceSource struct {
	mu   sync.Mutex
	seq  []entity.Outcome
	next int
}

// NewSequenceSource panics on an empty sequence.
func NewSequenceSource(seq ...entity.Outcome) *SequenceSource {
	if len(seq) == 0 {
		panic("random: empty outcome sequence")
	}
	return &SequenceSource{seq: seq}
}

func (s *SequenceSource) Draw() entity.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.seq[s.next%len(s.seq)]
	s.next++
	return o
}

var (
	_ port.OutcomeSource = (*UniformSource)(nil)
	_ port.OutcomeSource = (*SequenceSource)(nil)
)
