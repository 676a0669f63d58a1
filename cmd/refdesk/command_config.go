package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"refdesk/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

type configOutput struct {
	ConfigPath string           `json:"config_path" toml:"config_path"`
	DataDir    string           `json:"data_dir" toml:"data_dir"`
	Daemon     configDaemonOut  `json:"daemon" toml:"daemon"`
	Store      configStoreOut   `json:"store" toml:"store"`
	Logging    configLoggingOut `json:"logging" toml:"logging"`
	UI         configUIOut      `json:"ui" toml:"ui"`
}

type configDaemonOut struct {
	Address string `json:"address" toml:"address"`
}

type configStoreOut struct {
	Backend     string `json:"backend" toml:"backend"`
	PostgresDSN string `json:"postgres_dsn,omitempty" toml:"postgres_dsn,omitempty"`
}

type configLoggingOut struct {
	Level string `json:"level" toml:"level"`
}

type configUIOut struct {
	KeymapPath   string `json:"keymap_path,omitempty" toml:"keymap_path,omitempty"`
	DefaultScope string `json:"default_scope" toml:"default_scope"`
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", "toml", "output format (toml or json)")
	defaults := fs.Bool("defaults", false, "print built-in defaults instead of the effective config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.DefaultCoreConfig()
	if !*defaults {
		loaded, err := config.LoadCoreConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	configPath, err := config.CoreConfigPath()
	if err != nil {
		return err
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	out := configOutput{
		ConfigPath: configPath,
		DataDir:    dataDir,
		Daemon:     configDaemonOut{Address: cfg.DaemonAddress()},
		Store: configStoreOut{
			Backend:     cfg.StoreBackend(),
			PostgresDSN: cfg.PostgresDSN(),
		},
		Logging: configLoggingOut{Level: cfg.LogLevel()},
		UI: configUIOut{
			KeymapPath:   strings.TrimSpace(cfg.UI.KeymapPath),
			DefaultScope: cfg.DefaultScope(),
		},
	}

	switch strings.ToLower(*format) {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, string(data))
		return nil
	case "toml":
		data, err := toml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprint(c.stdout, string(data))
		return nil
	}
	return fmt.Errorf("unknown format: %s (want toml or json)", *format)
}
