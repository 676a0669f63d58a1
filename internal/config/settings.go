package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultDaemonAddress = "127.0.0.1:7787"

const (
	StoreBackendBbolt    = "bbolt"
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type CoreConfig struct {
	Daemon  CoreDaemonConfig  `toml:"daemon"`
	Store   CoreStoreConfig   `toml:"store"`
	Logging CoreLoggingConfig `toml:"logging"`
	UI      CoreUIConfig      `toml:"ui"`
}

type CoreDaemonConfig struct {
	Address string `toml:"address"`
}

type CoreStoreConfig struct {
	Backend     string `toml:"backend"`
	PostgresDSN string `toml:"postgres_dsn"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreUIConfig struct {
	KeymapPath   string `toml:"keymap_path"`
	DefaultScope string `toml:"default_scope"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Daemon: CoreDaemonConfig{
			Address: defaultDaemonAddress,
		},
		Store: CoreStoreConfig{
			Backend: StoreBackendBbolt,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
		UI: CoreUIConfig{
			DefaultScope: "Revit",
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return loadCoreConfigFromPath(path)
}

func (c CoreConfig) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c CoreConfig) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// StoreBackend returns the configured store backend, defaulting to
// bbolt when unset or unknown.
func (c CoreConfig) StoreBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case StoreBackendFile:
		return StoreBackendFile
	case StoreBackendPostgres:
		return StoreBackendPostgres
	default:
		return StoreBackendBbolt
	}
}

func (c CoreConfig) PostgresDSN() string {
	return strings.TrimSpace(c.Store.PostgresDSN)
}

func (c CoreConfig) DefaultScope() string {
	scope := strings.TrimSpace(c.UI.DefaultScope)
	if scope == "" {
		return "Revit"
	}
	return scope
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
