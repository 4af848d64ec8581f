package port

import "thurianx/internal/domain/entity"

// OutcomeSource draws one simulated classification.
type OutcomeSource interface {
	Draw() entity.Outcome
}
