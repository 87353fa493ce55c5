package ports

import "go.trai.ch/sitepipe/internal/core/domain"

// ConfigLoader defines the interface for resolving the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration of the project in dir from its config
	// file, its .env file and the process environment.
	Load(dir string) (*domain.Config, error)
}
