// Package app wires configuration, storage, the API gateway, and the
// services into a single client instance with an explicit lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devnarayan/folio/internal/clients/folio"
	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/services/notify"
	"github.com/devnarayan/folio/internal/services/portfolio"
	"github.com/devnarayan/folio/internal/services/session"
	"github.com/devnarayan/folio/internal/storage/credstore"
)

// App holds all initialized services and the gateway client. There is no
// process-wide singleton: callers construct an App, use it, and Close it.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Credentials      interfaces.CredentialStore
	Gateway          interfaces.Gateway
	Session          interfaces.SessionService
	PortfolioService *portfolio.Service
	Notifier         *notify.Service
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logger, credential store, gateway, and
// services. configPath may be empty, in which case FOLIO_CONFIG, then a
// folio.toml next to the binary, then the development default are tried.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	creds, err := credstore.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	gateway := folio.NewClient(creds,
		folio.WithBaseURL(config.API.BaseURL),
		folio.WithTimeout(config.API.GetTimeout()),
		folio.WithRateLimit(config.API.RateLimit),
		folio.WithLogger(logger),
	)

	notifier := notify.NewService(logger)
	sessionSvc := session.NewService(gateway, creds, logger)
	portfolioSvc := portfolio.NewService(gateway, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		Credentials:      creds,
		Gateway:          gateway,
		Session:          sessionSvc,
		PortfolioService: portfolioSvc,
		Notifier:         notifier,
	}, nil
}

// Restore replays the stored session at startup.
func (a *App) Restore(ctx context.Context) error {
	return a.Session.Restore(ctx)
}

// Close releases held resources.
func (a *App) Close() {
	a.Notifier.Close()
	if err := a.Credentials.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close credential store")
	}
}
