package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tickbrain/internal/config"
	"github.com/zeusync/tickbrain/internal/core/geom"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = log.LevelError
	cfg.Arena.Minions = []config.MinionConfig{{Archetype: "brute", Position: geom.V(4, 0), Sight: 6}}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	assert.Same(t, cfg, app.Config)
	assert.Len(t, app.World.Minions(), 1)
	assert.Equal(t, log.LevelError, app.Logger.GetLevel())
	assert.NotNil(t, app.Monitor)
	assert.NotNil(t, app.HTTP)
}

func TestInitializeAppRejectsUnknownArchetype(t *testing.T) {
	cfg := config.Default()
	cfg.Arena.Minions = []config.MinionConfig{{Archetype: "dragon", Sight: 6}}

	_, err := InitializeApp(cfg)
	assert.Error(t, err)
}
