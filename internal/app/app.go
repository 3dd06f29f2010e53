// Package app wires configuration, clients, and HTTP handlers together.
package app

import (
	"github.com/saqif1/AI-Technical-Analysis/internal/analysis"
	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
	"github.com/saqif1/AI-Technical-Analysis/internal/handlers"
	"github.com/saqif1/AI-Technical-Analysis/internal/market"
	"github.com/saqif1/AI-Technical-Analysis/internal/mcp"
	"github.com/saqif1/AI-Technical-Analysis/internal/pipeline"
	"github.com/saqif1/AI-Technical-Analysis/internal/session"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Sessions *session.Store
	Pipeline *pipeline.Service

	// HTTP handlers
	PageHandler      *handlers.PageHandler
	DashboardHandler *handlers.DashboardHandler
	AnalyzeHandler   *handlers.AnalyzeHandler
	ReportHandler    *handlers.ReportHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	MCPHandler       *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.Sessions = session.NewStore(cfg.Session.GetTTL(), cfg.Session.MaxEntries)

	fetcher := market.NewClient(cfg.Market, logger)
	analyzer := analysis.NewClient(cfg.Analysis, logger)
	a.Pipeline = pipeline.NewService(fetcher, analyzer, logger)

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// IsDevMode reports whether the app runs with development behavior.
func (a *App) IsDevMode() bool {
	return a.Config.Environment == "development"
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.IsDevMode())
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.PageHandler, a.Sessions, a.Config.Market)
	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.Logger, a.PageHandler, a.Sessions, a.Pipeline, a.Config.Market, a.Config.Keys)
	a.ReportHandler = handlers.NewReportHandler(a.Logger, a.Sessions)

	a.MCPHandler = mcp.NewHandler(a.Logger, a.Pipeline, a.Sessions, a.Config.Keys)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
