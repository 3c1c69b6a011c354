package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the optional ~/.pm/config.toml. Everything in it has a working
// default, so a missing file is not an error.
type Config struct {
	// DB overrides the default database path.
	DB string `toml:"db"`
	// Sort is the default list sort key (id|due|priority).
	Sort string `toml:"sort"`
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pm"), nil
}

func LoadConfig() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFile(filepath.Join(dir, "config.toml"))
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	cfg.DB = strings.TrimSpace(cfg.DB)
	cfg.Sort = strings.TrimSpace(cfg.Sort)
	return cfg, nil
}

// DefaultPath resolves the database file: config override first, then
// ~/.pm/tasks.json (directory created on demand).
func DefaultPath() (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DB != "" {
		return cfg.DB, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.json"), nil
}
