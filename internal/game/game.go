// Package game implements the main game loop and state management.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/assets"
	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/internal/engine/resource"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/internal/game/states"
	"github.com/Faultbox/gorge/internal/game/world"
)

// maxCatchUp bounds the ticks run after a stall in realtime mode.
const maxCatchUp = 5

// Game is the main game instance. It runs headless: every tick updates the
// current state, nothing is drawn.
type Game struct {
	cfg       *config.Config
	log       *zap.Logger
	assets    *assets.Manager
	resources *resource.Manager
	world     *world.Manager
	states    *states.Manager
	clock     *clock.Clock
}

// New creates a new game instance. Asset roots that do not exist are skipped
// with a warning.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing game",
		zap.String("map", cfg.Level.MapModel),
		zap.Int("tick_rate", cfg.Simulation.TickRate),
	)

	src := assets.NewManager()
	mounted := 0
	for _, root := range cfg.Data.AssetRoots {
		if err := src.MountDir(root); err != nil {
			log.Warn("skipping asset root", zap.String("root", root), zap.Error(err))
			continue
		}
		mounted++
	}
	if mounted == 0 {
		return nil, errors.New("no usable asset root")
	}

	res := resource.NewManager(src, log.Named("resource"))
	g := &Game{
		cfg:       cfg,
		log:       log,
		assets:    src,
		resources: res,
		world: world.NewManager(world.Deps{
			Resources: res,
			Surfaces:  mesh.NewStorage(),
			Scenes:    pool.New[*scene.Scene](),
			Log:       log.Named("world"),
		}),
		states: states.NewManager(),
		clock:  clock.New(cfg.Simulation.TickDuration()),
	}
	g.states.Change(states.NewLoadingState(cfg, g.world, g.states, res.Preload, log.Named("states")))

	log.Info("game initialized successfully")
	return g, nil
}

// World returns the world manager.
func (g *Game) World() *world.Manager {
	return g.world
}

// Ticks returns the number of ticks run so far.
func (g *Game) Ticks() uint64 {
	return g.clock.Ticks()
}

// Run ticks the game until ctx is done, the configured frame count is
// reached or the configured timeout expires.
func (g *Game) Run(ctx context.Context) error {
	if g.cfg.Simulation.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Simulation.Timeout)
		defer cancel()
	}

	g.log.Info("starting game loop",
		zap.Int("frames", g.cfg.Simulation.Frames),
		zap.Bool("realtime", g.cfg.Simulation.Realtime),
	)

	var err error
	if g.cfg.Simulation.Realtime {
		err = g.runRealtime(ctx)
	} else {
		err = g.runFast(ctx)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		g.log.Info("game loop stopped", zap.Uint64("ticks", g.clock.Ticks()), zap.Error(err))
		return nil
	}
	return err
}

func (g *Game) done() bool {
	frames := g.cfg.Simulation.Frames
	return frames > 0 && g.clock.Ticks() >= uint64(frames)
}

// runFast ticks back to back, ignoring the wall clock.
func (g *Game) runFast(ctx context.Context) error {
	for !g.done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.tick(); err != nil {
			return err
		}
	}
	return nil
}

// runRealtime paces ticks to the wall clock.
func (g *Game) runRealtime(ctx context.Context) error {
	ticker := time.NewTicker(g.clock.Step())
	defer ticker.Stop()

	last := time.Now()
	for !g.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			n := g.clock.Advance(now.Sub(last), maxCatchUp)
			last = now
			for i := 0; i < n && !g.done(); i++ {
				if err := g.tick(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Game) tick() error {
	t := g.clock.Tick()
	if err := g.states.Update(t); err != nil {
		return fmt.Errorf("tick %d: %w", g.clock.Ticks(), err)
	}
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if err := g.states.Close(); err != nil {
		g.log.Warn("closing state", zap.Error(err))
	}
	g.world.Unload()
	hits, misses := g.assets.CacheStats()
	g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	g.assets.Close()
}
