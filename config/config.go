package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Physics PhysicsConfig `toml:"physics"`
	Sandbox SandboxConfig `toml:"sandbox"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	Capacity int `toml:"capacity"`
}

type PhysicsConfig struct {
	GravityX   float64       `toml:"gravity_x"`
	GravityY   float64       `toml:"gravity_y"`
	Damping    float64       `toml:"damping"`
	Broadphase string        `toml:"broadphase"` // "tree" or "bruteforce"
	FixedStep  time.Duration `toml:"fixed_step"`
}

type SandboxConfig struct {
	Level     string `toml:"level"`
	PrefabDir string `toml:"prefab_dir"`
	HotReload bool   `toml:"hot_reload"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	if c.Engine.Capacity <= 0 {
		return fmt.Errorf("engine.capacity must be positive, got %d", c.Engine.Capacity)
	}
	if c.Physics.FixedStep <= 0 {
		return fmt.Errorf("physics.fixed_step must be positive, got %s", c.Physics.FixedStep)
	}
	switch c.Physics.Broadphase {
	case "", "tree", "bruteforce":
	default:
		return fmt.Errorf("physics.broadphase: unknown kind %q", c.Physics.Broadphase)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Capacity: 1024,
		},
		Physics: PhysicsConfig{
			GravityY:   600,
			Damping:    0.99,
			Broadphase: "tree",
			FixedStep:  time.Second / 60,
		},
		Sandbox: SandboxConfig{
			Level:     "sandbox",
			PrefabDir: "prefabs",
			HotReload: true,
			Width:     768,
			Height:    432,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
