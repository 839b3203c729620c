package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/game/world"
)

// LoadingState assembles the configured level, then hands over to PlayingState.
type LoadingState struct {
	cfg     *config.Config
	world   *world.Manager
	manager *Manager
	log     *zap.Logger

	// Preload failures are reported but do not stop loading.
	preload func(paths ...string) error
}

// NewLoadingState creates a new loading state.
func NewLoadingState(cfg *config.Config, w *world.Manager, manager *Manager, preload func(paths ...string) error, log *zap.Logger) *LoadingState {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoadingState{
		cfg:     cfg,
		world:   w,
		manager: manager,
		log:     log,
		preload: preload,
	}
}

// Name implements State.
func (s *LoadingState) Name() string { return "loading" }

// Enter is called when entering this state.
func (s *LoadingState) Enter() error {
	s.log.Info("entering LoadingState", zap.String("map", s.cfg.Level.MapModel))

	if s.preload != nil {
		paths := []string{s.cfg.Level.MapModel}
		for _, e := range s.cfg.Level.Entities {
			paths = append(paths, e.Model)
		}
		if err := s.preload(paths...); err != nil {
			s.log.Warn("preload incomplete", zap.Error(err))
		}
	}

	l, err := s.world.Load(s.cfg)
	if err != nil {
		return fmt.Errorf("entering loading state: %w", err)
	}

	s.manager.Change(NewPlayingState(l, s.cfg.Player, s.log))
	return nil
}

// Exit is called when leaving this state.
func (s *LoadingState) Exit() error {
	return nil
}

// Update is called every tick.
func (s *LoadingState) Update(clock.GameTime) error {
	return nil
}
