// Package config handles runtime configuration loading and management.
package config

import "time"

// Config holds all runtime settings.
type Config struct {
	Level      LevelConfig      `yaml:"level"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Simulation SimulationConfig `yaml:"simulation"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LevelConfig describes what the level assembler loads.
type LevelConfig struct {
	MapModel      string      `yaml:"map_model"`      // Model instantiated as the level
	CollisionNode string      `yaml:"collision_node"` // Mesh node used as static collision
	Entities      []EntitySet `yaml:"entities"`       // Secondary models placed in the level
}

// EntitySet places Count instances of Model at Offset + i*Step.
type EntitySet struct {
	Model  string     `yaml:"model"`
	Count  int        `yaml:"count"`
	Offset [3]float32 `yaml:"offset"`
	Step   [3]float32 `yaml:"step"`
}

// PhysicsConfig holds physics world settings.
type PhysicsConfig struct {
	Gravity [3]float32 `yaml:"gravity"`
	MaxStep float32    `yaml:"max_step"` // Highest ledge a body steps onto
}

// PlayerConfig holds player settings.
type PlayerConfig struct {
	Spawn     [3]float32 `yaml:"spawn"`
	Radius    float32    `yaml:"radius"`
	EyeHeight float32    `yaml:"eye_height"`
	MoveSpeed float32    `yaml:"move_speed"`

	// Scripted input fed to the player every tick.
	ScriptedMove [2]float32 `yaml:"scripted_move"` // strafe, forward in [-1, 1]
	TurnRate     float32    `yaml:"turn_rate"`     // yaw change, radians per second
}

// SimulationConfig holds main loop settings.
type SimulationConfig struct {
	TickRate int           `yaml:"tick_rate"` // Fixed updates per second
	Frames   int           `yaml:"frames"`    // Ticks to run; 0 runs until stopped
	Timeout  time.Duration `yaml:"timeout"`   // Wall-clock limit; 0 disables
	Realtime bool          `yaml:"realtime"`  // Pace ticks to the wall clock
}

// DataConfig holds asset locations.
type DataConfig struct {
	AssetRoots []string `yaml:"asset_roots"` // Searched last-first
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TickDuration returns the fixed update step.
func (s SimulationConfig) TickDuration() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Level: LevelConfig{
			MapModel:      "data/models/map.model.yaml",
			CollisionNode: "Polygon",
			Entities: []EntitySet{
				{
					Model:  "data/models/ripper.model.yaml",
					Count:  4,
					Offset: [3]float32{-0.25, 0, 3.0},
					Step:   [3]float32{0, 0, -1.75},
				},
			},
		},
		Physics: PhysicsConfig{
			Gravity: [3]float32{0, -9.81, 0},
			MaxStep: 0.3,
		},
		Player: PlayerConfig{
			Spawn:     [3]float32{0, 2, 0},
			Radius:    0.4,
			EyeHeight: 1.6,
			MoveSpeed: 4,

			ScriptedMove: [2]float32{0, 0.5},
			TurnRate:     0.5,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
			Frames:   600,
		},
		Data: DataConfig{
			AssetRoots: []string{"."},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
