// Package config manages the ambient TOML configuration for substrix:
// knobs that tune logging and the optional query cache, never the
// index's match semantics (those hold identically regardless of what's
// in this file — see spec invariants P1-P7).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config is the root configuration structure.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Log   LogConfig   `toml:"log"`
}

// CacheConfig tunes Model's optional query-result cache.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries"`
}

// LogConfig tunes the verbosity of construction/query logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the built-in defaults: caching on with a modest
// entry cap, logging at warn.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{Enabled: true, MaxEntries: 512},
		Log:   LogConfig{Level: "warn"},
	}
}

// GetConfigDir returns ~/.config/substrix, falling back to the current
// directory if the home directory can't be determined.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("failed to get home directory: %v, using current directory", err)
		return "."
	}
	return filepath.Join(home, ".config", "substrix")
}

// InitConfig loads config from path, creating a default file there if
// none exists. Any I/O or parse failure degrades to built-in defaults
// rather than aborting the caller.
func InitConfig(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warnf("failed to create config directory %s: %v, using built-in defaults", dir, err)
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, path); err != nil {
			log.Warnf("failed to create default config at %s: %v, using built-in defaults", path, err)
			return DefaultConfig(), nil
		}
		log.Debugf("created default config file at %s", path)
		return cfg, nil
	}

	return LoadConfig(path)
}

// LoadConfig loads config from a TOML file, falling back to a
// section-by-section partial parse if the file is malformed, and to
// built-in defaults if even that fails.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		log.Warnf("failed to parse config %s: %v, attempting partial recovery", path, err)
		return tryPartialParse(path)
	}
	return cfg, nil
}

// tryPartialParse recovers whatever sections of a malformed config file
// it can: a syntax error in one [section] shouldn't throw away a
// perfectly good sibling section, so each [section] is decoded on its
// own rather than as part of one atomic document.
func tryPartialParse(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("could not read %s: %v, using all defaults", path, err)
		return cfg, nil
	}

	recovered := 0
	for name, body := range splitSections(string(data)) {
		var section map[string]any
		if _, err := toml.Decode(body, &section); err != nil {
			log.Warnf("dropping unparseable [%s] section in %s: %v", name, path, err)
			continue
		}
		switch name {
		case "cache":
			if v, ok := section["enabled"].(bool); ok {
				cfg.Cache.Enabled = v
			}
			if v, ok := section["max_entries"].(int64); ok {
				cfg.Cache.MaxEntries = int(v)
			}
			recovered++
		case "log":
			if v, ok := section["level"].(string); ok {
				cfg.Log.Level = v
			}
			recovered++
		}
	}
	if recovered == 0 {
		log.Warnf("could not recover any configuration from %s, using all defaults", path)
	}
	return cfg, nil
}

// splitSections breaks a TOML document into its top-level [section]
// bodies, keyed by section name, without requiring the whole document
// to parse. A line outside any section heading is discarded.
func splitSections(data string) map[string]string {
	sections := make(map[string]string)
	var name string
	var body strings.Builder

	flush := func() {
		if name != "" {
			sections[name] = body.String()
		}
		body.Reset()
	}

	for _, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			name = strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
	return sections
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
