package states

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/game/world"
	"github.com/Faultbox/gorge/pkg/math"
)

// reportEvery is how often the playing state logs the player's status.
const reportEvery = time.Second

// PlayingState drives a loaded level with scripted player input.
type PlayingState struct {
	level *world.Level
	input config.PlayerConfig
	log   *zap.Logger

	yaw        float32
	lastReport time.Duration
}

// NewPlayingState creates the state for a loaded level.
func NewPlayingState(l *world.Level, input config.PlayerConfig, log *zap.Logger) *PlayingState {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayingState{level: l, input: input, log: log}
}

// Name implements State.
func (s *PlayingState) Name() string { return "playing" }

// Level returns the level being played.
func (s *PlayingState) Level() *world.Level {
	return s.level
}

// Enter is called when entering this state.
func (s *PlayingState) Enter() error {
	s.log.Info("entering PlayingState")
	return nil
}

// Exit is called when leaving this state.
func (s *PlayingState) Exit() error {
	return nil
}

// Update feeds the scripted input to the player and advances the level.
func (s *PlayingState) Update(t clock.GameTime) error {
	s.yaw += s.input.TurnRate * t.Seconds()
	move := math.Vec2{X: s.input.ScriptedMove[0], Y: s.input.ScriptedMove[1]}
	s.level.Player().SetInput(move, s.yaw, 0)

	s.level.Update(t)

	sc := s.level.Scene()
	if sc != nil && t.Elapsed-s.lastReport >= reportEvery {
		s.lastReport = t.Elapsed
		pos, _ := s.level.Player().Position(sc)
		s.log.Debug("player",
			zap.Duration("elapsed", t.Elapsed),
			zap.Float32("x", pos.X),
			zap.Float32("y", pos.Y),
			zap.Float32("z", pos.Z),
			zap.Bool("grounded", s.level.Player().Grounded(sc)),
		)
	}
	return nil
}
