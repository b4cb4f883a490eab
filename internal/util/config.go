package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	ConfigFileName  = "easycode.toml"
	DefaultPrompt   = "EasyCode > "
	DefaultMaxDepth = 1000
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	Home      string `toml:"-"`

	Prompt          string `toml:"prompt"`
	NaturalLanguage bool   `toml:"natural_language"`
	MaxDepth        int    `toml:"max_depth"`
	DebugAST        bool   `toml:"debug_ast"`

	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Driver  string `toml:"driver"`
	DSN     string `toml:"dsn"`
	Session string `toml:"session"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Prompt:          DefaultPrompt,
		NaturalLanguage: true,
		MaxDepth:        DefaultMaxDepth,
		Log:             LogConfig{Level: "none"},
		History:         HistoryConfig{Driver: "sqlite3", DSN: "easycode_history.db"},
	}
}

// ConfigPath picks the configuration file: the explicit path, else
// easycode.toml in home, else in the working directory. It returns "" when
// none of the implicit candidates exist.
func ConfigPath(explicit, home string) string {
	if explicit != "" {
		return explicit
	}
	var candidates []string
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ConfigFileName))
	}
	candidates = append(candidates, ConfigFileName)
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// LoadConfiguration reads path over the defaults. An empty path yields the
// defaults unchanged.
func LoadConfiguration(path string) (Configuration, error) {
	cfg := DefaultConfiguration()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg, nil
}
