package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/tickbrain/internal/config"
	"github.com/zeusync/tickbrain/internal/core/arena"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
	"github.com/zeusync/tickbrain/internal/server"
)

// App is everything cmd/arena needs to run.
type App struct {
	Config  *config.Config
	Logger  log.Log
	World   *arena.World
	Monitor *server.Monitor
	HTTP    *server.HTTPServer
}

var ArenaSet = wire.NewSet(
	ProvideLogger,
	ProvideWorld,
	ProvideMonitor,
	ProvideHTTPServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) log.Log {
	return log.New(cfg.LogLevel)
}

func ProvideWorld(cfg *config.Config, logger log.Log) (*arena.World, error) {
	return arena.New(cfg, logger)
}

func ProvideMonitor(cfg *config.Config, logger log.Log) *server.Monitor {
	return server.NewMonitor(server.TokenAuth{Token: cfg.Monitor.Token}, logger)
}

func ProvideHTTPServer(cfg *config.Config, monitor *server.Monitor, logger log.Log) *server.HTTPServer {
	return server.NewHTTPServer(cfg.Monitor.Addr, monitor, logger)
}
