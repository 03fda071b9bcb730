package cmd

import (
	"os"
	"path/filepath"

	"studioops/internal/adapters/api"
	"studioops/internal/adapters/storage"
	"studioops/internal/cache"
	"studioops/internal/config"
	"studioops/internal/ports"
	"studioops/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	DataService     *services.DataService
	DownloadService *services.DownloadService

	// Adapters
	Backend ports.Backend
	Cache   *cache.Cache

	// Internal - for cleanup only
	downloadRepo ports.DownloadRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(backendURL string, settings *config.Settings) (*Container, error) {
	timeout := settings.RequestTimeout()

	client := api.NewClient(backendURL, timeout)
	backend := client.Backend()

	queryCache := cache.New(settings.StaleTime())

	downloadRepo, err := storage.NewSQLiteRepository(config.DBPath())
	if err != nil {
		queryCache.Close()
		return nil, err
	}

	dataService := services.NewDataService(backend, queryCache, settings.DashboardStaleTime())
	downloadService := services.NewDownloadService(backend.Exports, downloadRepo, downloadDir(settings))

	return &Container{
		Backend:         backend,
		Cache:           queryCache,
		DataService:     dataService,
		DownloadService: downloadService,
		downloadRepo:    downloadRepo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Cache != nil {
		c.Cache.Close()
	}
	if c.downloadRepo != nil {
		return c.downloadRepo.Close()
	}
	return nil
}

// downloadDir resolves where downloaded export files are written
func downloadDir(settings *config.Settings) string {
	if settings != nil && settings.DownloadDir != "" {
		return config.ExpandPath(settings.DownloadDir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "exports"
	}
	return filepath.Join(homeDir, ".studioops", "exports")
}
