package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMap      = flag.String("map", "", "Map model to load")
	flagNode     = flag.String("collision-node", "", "Mesh node used for static collision")
	flagFrames   = flag.Int("frames", -1, "Number of ticks to simulate (0 = until interrupted)")
	flagAssets   = flag.String("assets", "", "Extra asset root (highest priority)")
	flagRealtime = flag.Bool("realtime", false, "Pace the simulation to the wall clock")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMap != "" {
		cfg.Level.MapModel = *flagMap
	}
	if *flagNode != "" {
		cfg.Level.CollisionNode = *flagNode
	}
	if *flagFrames >= 0 {
		cfg.Simulation.Frames = *flagFrames
	}
	if *flagRealtime {
		cfg.Simulation.Realtime = true
	}
	if *flagAssets != "" {
		cfg.Data.AssetRoots = append(cfg.Data.AssetRoots, *flagAssets)
	}
}
