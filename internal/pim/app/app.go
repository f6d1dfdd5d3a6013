package app

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/aussiebroadwan/azpim/internal/pim/tools"
	"github.com/aussiebroadwan/azpim/pkg/azpim"
	"github.com/aussiebroadwan/azpim/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	serverName = "azpim"
)

// Application encapsulates the PIM MCP server with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	pim    *azpim.Client
	server *server.MCPServer
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serverName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.initClient()
	app.initServer()

	return app, nil
}

// Run serves the MCP stdio transport and blocks until the client closes
// stdin or the process is interrupted.
func (app *Application) Run() error {
	app.logger.Info("azpim mcp server starting",
		"version", BuildVersion,
		"az_binary", app.cfg.AzBinary,
	)

	return server.ServeStdio(app.server)
}

// initClient wires the PIM library client against the real Azure CLI.
func (app *Application) initClient() {
	pim := azpim.NewClient()
	pim.Runner = &azpim.AzureCLI{Binary: app.cfg.AzBinary}
	pim.Store = azpim.NewFileStore(app.logger)
	pim.Logger = app.logger
	pim.ManagementURL = app.cfg.ManagementURL
	app.pim = pim
}

// initServer builds the MCP server and registers the tool surface.
func (app *Application) initServer() {
	srv := server.NewMCPServer(
		serverName,
		BuildVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(tools.LoggingMiddleware(app.logger)),
	)

	registry := &tools.Registry{
		PIM:    app.pim,
		Logger: app.logger,
	}
	registry.Apply(srv)

	app.server = srv
}
