package container

import (
	"thurianx/config"
	app "thurianx/internal/application"
	"thurianx/internal/domain/port"
	"thurianx/internal/i18n"
	"thurianx/internal/infrastructure/clock"
	"thurianx/internal/infrastructure/random"
	"thurianx/internal/infrastructure/storage"
	"thurianx/internal/infrastructure/vision"
)

type Container struct {
	SessionService        *app.SessionService
	ClassificationService *app.ClassificationService
	Catalog               *i18n.Catalog
}

// Deps are the ports the services are built on.
type Deps struct {
	Sessions port.SessionRepository
	Previews port.PreviewStore
	Renderer port.PreviewRenderer
	Outcomes port.OutcomeSource
	Clock    port.Clock
}

// DefaultDeps returns the in-memory, wall-clock production wiring.
func DefaultDeps(cfg *config.Config) Deps {
	return Deps{
		Sessions: storage.NewMemorySessionRepository(),
		Previews: storage.NewMemoryPreviewStore(),
		Renderer: vision.NewPreviewer(cfg.PreviewMaxSide),
		Outcomes: random.NewUniformSource(),
		Clock:    clock.System{},
	}
}

func New(cfg *config.Config, deps Deps) (*Container, error) {
	catalog, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	sessionService := app.NewSessionService(deps.Sessions, deps.Previews, deps.Renderer, deps.Clock, cfg.DefaultLanguage)
	classificationService := app.NewClassificationService(deps.Sessions, deps.Outcomes, deps.Clock, cfg.AnalysisDelay, cfg.HistoryLimit)

	return &Container{
		SessionService:        sessionService,
		ClassificationService: classificationService,
		Catalog:               catalog,
	}, nil
}
