// Package world assembles levels and manages the active one.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
)

// Manager manages the current level and level transitions.
type Manager struct {
	deps    Deps
	current *Level
	loading bool
}

// NewManager creates a new world manager.
func NewManager(deps Deps) *Manager {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Manager{deps: deps}
}

// Current returns the current level, nil before the first Load.
func (m *Manager) Current() *Level {
	return m.current
}

// Load assembles a level from cfg and makes it current, unloading the
// previous one.
func (m *Manager) Load(cfg *config.Config) (*Level, error) {
	m.loading = true
	defer func() { m.loading = false }()

	m.Unload()

	l, err := NewLevel(m.deps, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", cfg.Level.MapModel, err)
	}

	m.current = l
	return l, nil
}

// Update advances the current level.
func (m *Manager) Update(t clock.GameTime) {
	if m.current != nil {
		m.current.Update(t)
	}
}

// Unload drops the current level and frees its scene.
func (m *Manager) Unload() {
	if m.current == nil {
		return
	}
	m.current.close()
	m.current = nil
	m.deps.Log.Debug("level unloaded", zap.Int("scenes", m.deps.Scenes.Len()))
}

// IsLoading returns whether a level is currently loading.
func (m *Manager) IsLoading() bool {
	return m.loading
}
