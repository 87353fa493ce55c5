// Package config resolves the sitepipe project configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables the pipeline reads.
const (
	EnvHugoVersion = "HUGO_VERSION"
	EnvDebug       = "DEBUG"
)

// Loader implements ports.ConfigLoader from sitepipe.yaml, .env and the process environment.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration of the project in dir.
// The .env file is applied first and never overrides variables that are already set.
func (l *Loader) Load(dir string) (*domain.Config, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "dir", dir)
	}

	if err := l.loadEnvFile(filepath.Join(root, domain.EnvFileName)); err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig(root)
	cfg.Platform = runtime.GOOS
	cfg.HugoVersion = os.Getenv(EnvHugoVersion)
	cfg.Debug = os.Getenv(EnvDebug) != ""

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		if err := l.applySitefile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	if _, err := domain.ParseBrowserTargets(cfg.BrowserTargets); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", path)
	}
	l.Logger.Debug("loaded environment from " + path)

	return nil
}

func (l *Loader) applySitefile(cfg *domain.Config, configPath string) error {
	var sitefile Sitefile
	if err := readAndUnmarshalYAML(configPath, &sitefile); err != nil {
		return zerr.With(err, "path", configPath)
	}

	if sitefile.Server.Addr != "" {
		cfg.Addr = sitefile.Server.Addr
	}
	if len(sitefile.Styles.Targets) > 0 {
		cfg.BrowserTargets = sitefile.Styles.Targets
	}
	if sitefile.Watch.Debounce != "" {
		d, err := time.ParseDuration(sitefile.Watch.Debounce)
		if err != nil || d < 0 {
			return zerr.With(zerr.New(domain.ErrConfigParseFailed.Error()), "watch.debounce", sitefile.Watch.Debounce)
		}
		cfg.WatchDebounce = d
	}

	l.Logger.Debug("loaded " + configPath)
	return nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is built from the project root
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
