package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/tickbrain/internal/core/attack"
	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/geom"
	"github.com/zeusync/tickbrain/internal/core/minion"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the arena process configuration.
type Config struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `yaml:"tick_rate"`
	// Ticks stops the loop after that many ticks. Zero runs until cancelled.
	Ticks    int       `yaml:"ticks"`
	Budget   int       `yaml:"budget"`
	LogLevel log.Level `yaml:"log_level"`
	// Workers bounds how many minion brains think in parallel. One or less
	// thinks sequentially.
	Workers int `yaml:"workers"`

	Monitor MonitorConfig `yaml:"monitor"`
	Arena   ArenaConfig   `yaml:"arena"`

	// Archetypes are brains written in the definition DSL. They shadow the
	// built-in archetypes of the same name.
	Archetypes map[string]behavior.Spec `yaml:"archetypes"`
}

type MonitorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// Token, when set, must be passed as ?token= by websocket clients.
	Token string `yaml:"token"`
}

type ArenaConfig struct {
	Gravity float64        `yaml:"gravity"`
	GroundY float64        `yaml:"ground_y"`
	Player  PlayerConfig   `yaml:"player"`
	Minions []MinionConfig `yaml:"minions"`
	// Clips maps animation names to their length in seconds.
	Clips map[string]float64 `yaml:"clips"`
}

type PlayerConfig struct {
	Position geom.Vec2 `yaml:"position"`
	// Reach is the hit radius of an attack with damage.
	Reach   float64        `yaml:"reach"`
	Attacks []AttackConfig `yaml:"attacks"`
}

// AttackConfig is a scripted attack request fired at a given tick.
type AttackConfig struct {
	Tick  int     `yaml:"tick"`
	Type  string  `yaml:"type"`
	Speed float64 `yaml:"speed,omitempty"`
}

type MinionConfig struct {
	Archetype string    `yaml:"archetype"`
	Position  geom.Vec2 `yaml:"position"`
	Sight     float64   `yaml:"sight"`
	Health    int       `yaml:"health"`
}

// Default returns the configuration used for anything a file leaves out.
func Default() *Config {
	return &Config{
		TickRate: 60,
		Budget:   64,
		LogLevel: log.LevelInfo,
		Workers:  1,
		Monitor: MonitorConfig{
			Enabled: true,
			Addr:    ":8080",
		},
		Arena: ArenaConfig{
			Gravity: 40,
			Player: PlayerConfig{
				Position: geom.V(0, 0),
				Reach:    2,
			},
			Clips: map[string]float64{
				minion.AnimIdle:  0.5,
				minion.AnimLunge: 0.4,
				"Slash":          0.25,
				"RunningSlash":   0.3,
				"AirSlash":       0.3,
				"Plunge":         0.2,
			},
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative", ErrInvalidConfig)
	}
	if c.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive, got %d", ErrInvalidConfig, c.Budget)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Monitor.Enabled && c.Monitor.Addr == "" {
		return fmt.Errorf("%w: monitor.addr is required when the monitor is enabled", ErrInvalidConfig)
	}
	if c.Arena.Gravity < 0 {
		return fmt.Errorf("%w: gravity must not be negative", ErrInvalidConfig)
	}
	if c.Arena.Player.Reach <= 0 {
		return fmt.Errorf("%w: player.reach must be positive", ErrInvalidConfig)
	}
	for name, length := range c.Arena.Clips {
		if length <= 0 {
			return fmt.Errorf("%w: clip %q has length %v", ErrInvalidConfig, name, length)
		}
	}
	for i, a := range c.Arena.Player.Attacks {
		if a.Tick < 0 {
			return fmt.Errorf("%w: attack %d: negative tick", ErrInvalidConfig, i)
		}
		if _, err := attack.ParseType(a.Type, a.Speed); err != nil {
			return fmt.Errorf("%w: attack %d: %w", ErrInvalidConfig, i, err)
		}
	}
	for i, m := range c.Arena.Minions {
		if !c.HasArchetype(m.Archetype) {
			return fmt.Errorf("%w: minion %d: unknown archetype %q", ErrInvalidConfig, i, m.Archetype)
		}
		if m.Sight <= 0 {
			return fmt.Errorf("%w: minion %d: sight must be positive", ErrInvalidConfig, i)
		}
		if m.Health < 0 {
			return fmt.Errorf("%w: minion %d: negative health", ErrInvalidConfig, i)
		}
	}
	return nil
}

// HasArchetype reports whether name is defined in the file or built in.
func (c *Config) HasArchetype(name string) bool {
	if _, ok := c.Archetypes[name]; ok {
		return true
	}
	_, ok := minion.Archetypes[name]
	return ok
}

// TickInterval is the wall-clock period of one tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// FrameTime is the simulated seconds advanced per tick.
func (c *Config) FrameTime() float64 {
	return 1 / float64(c.TickRate)
}
