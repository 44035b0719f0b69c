package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tickbrain/internal/core/geom"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

const sample = `
tick_rate: 30
ticks: 300
budget: 16
workers: 4
log_level: debug
monitor:
  enabled: true
  addr: "127.0.0.1:9090"
arena:
  gravity: 30
  player:
    position: {x: 0, y: 0}
    reach: 2.5
    attacks:
      - {tick: 10, type: slash}
      - {tick: 40, type: running_slash, speed: 8}
  minions:
    - {archetype: brute, position: {x: 4, y: 0}, sight: 10, health: 3}
    - {archetype: coward, position: {x: -6, y: 0}, sight: 8}
archetypes:
  coward:
    type: sequence
    children:
      - {leaf: on_the_ground}
      - {leaf: lunge_away, params: {speed: 10, rise: 5}}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, 300, cfg.Ticks)
	assert.Equal(t, 16, cfg.Budget)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9090", cfg.Monitor.Addr)
	assert.Equal(t, 30.0, cfg.Arena.Gravity)
	require.Len(t, cfg.Arena.Minions, 2)
	assert.Equal(t, geom.V(4, 0), cfg.Arena.Minions[0].Position)
	assert.Equal(t, "coward", cfg.Arena.Minions[1].Archetype)
	require.Len(t, cfg.Arena.Player.Attacks, 2)
	assert.Equal(t, 8.0, cfg.Arena.Player.Attacks[1].Speed)
	require.Contains(t, cfg.Archetypes, "coward")
	assert.Len(t, cfg.Archetypes["coward"].Children, 2)

	assert.Equal(t, time.Second/30, cfg.TickInterval())
	assert.InDelta(t, 1.0/30, cfg.FrameTime(), 1e-12)
}

func TestDefaultsFillGaps(t *testing.T) {
	cfg, err := Parse([]byte("ticks: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 64, cfg.Budget)
	assert.Equal(t, log.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Monitor.Addr)
	assert.NotEmpty(t, cfg.Arena.Clips)
	assert.NoError(t, Default().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"zero tick rate":    "tick_rate: 0",
		"negative ticks":    "ticks: -1",
		"zero budget":       "budget: 0",
		"negative workers":  "workers: -2",
		"bad level":         "log_level: loud",
		"monitor addr":      "monitor: {enabled: true, addr: \"\"}",
		"negative gravity":  "arena: {gravity: -1}",
		"no reach":          "arena: {player: {reach: 0}}",
		"unknown attack":    "arena: {player: {attacks: [{tick: 1, type: uppercut}]}}",
		"negative tick":     "arena: {player: {attacks: [{tick: -1, type: slash}]}}",
		"unknown archetype": "arena: {minions: [{archetype: dragon, sight: 3}]}",
		"blind minion":      "arena: {minions: [{archetype: brute}]}",
		"bad clip":          "arena: {clips: {Slash: 0}}",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("budget: -4"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.HasArchetype("coward"))
	assert.True(t, cfg.HasArchetype("shooter"))
	assert.False(t, cfg.HasArchetype("dragon"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "cmd", "arena", "arena.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Arena.Minions, 4)
	assert.True(t, cfg.HasArchetype("hopper"))
}
