// Package app wires configuration, storage, and services into a single
// shared core used by cmd/zawali-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/services/analytics"
	"github.com/skander-fourati/zawali/internal/services/importer"
	"github.com/skander-fourati/zawali/internal/services/portfolio"
	"github.com/skander-fourati/zawali/internal/storage/surrealdb"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	ImportService    interfaces.ImportService
	AnalyticsService interfaces.AnalyticsService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes storage and all services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: explicit path, ZAWALI_CONFIG, binary dir, dev fallback.
	if configPath == "" {
		configPath = os.Getenv("ZAWALI_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "zawali.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/zawali.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	importService := importer.NewService(storageManager, logger)
	analyticsService := analytics.NewService(storageManager, logger)
	portfolioService := portfolio.NewService(storageManager, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		ImportService:    importService,
		AnalyticsService: analyticsService,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
