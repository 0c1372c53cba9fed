// Package config provides configuration management for skillmeta.
// It supports YAML and TOML configuration files, environment variables,
// and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/skillmeta/internal/util"
)

// Config represents the complete skillmeta configuration.
type Config struct {
	// SkillsPaths is an ordered list of directories to search for skills.
	// Paths may use ~ for the home directory.
	SkillsPaths []string `yaml:"skills_paths" toml:"skills_paths"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default output format (yaml, json, toml)
	Format string `yaml:"format" toml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SkillsPaths: util.DefaultSkillsPaths(),
		Output: OutputConfig{
			Format: "yaml",
			Color:  "auto",
		},
	}
}

// candidateFiles lists config file locations in precedence order.
func candidateFiles() []string {
	candidates := []string{
		".skillmeta.yaml",
		".skillmeta.toml",
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(configDir, "skillmeta", "config.yaml"),
			filepath.Join(configDir, "skillmeta", "config.toml"),
		)
	}
	return candidates
}

// Load reads configuration from the first file found, applies environment
// overrides, and fills in defaults. SKILLMETA_CONFIG forces a specific
// file and fails loudly if it cannot be read.
func Load() (Config, error) {
	if path := os.Getenv("SKILLMETA_CONFIG"); path != "" {
		cfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		return applyEnv(withDefaults(cfg)), nil
	}

	for _, path := range candidateFiles() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		return applyEnv(withDefaults(cfg)), nil
	}

	return applyEnv(Default()), nil
}

// LoadFile reads a single configuration file, dispatching on extension.
func LoadFile(path string) (Config, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}

	for i, p := range cfg.SkillsPaths {
		cfg.SkillsPaths[i] = util.ExpandPath(p)
	}
	return cfg, nil
}

// withDefaults fills unset fields from Default.
func withDefaults(cfg Config) Config {
	def := Default()
	if len(cfg.SkillsPaths) == 0 {
		cfg.SkillsPaths = def.SkillsPaths
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = def.Output.Format
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = def.Output.Color
	}
	return cfg
}

// applyEnv overlays SKILLMETA_* environment variables.
func applyEnv(cfg Config) Config {
	if paths := os.Getenv("SKILLMETA_SKILLS_PATHS"); paths != "" {
		var list []string
		for _, p := range strings.Split(paths, string(os.PathListSeparator)) {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, util.ExpandPath(p))
			}
		}
		if len(list) > 0 {
			cfg.SkillsPaths = list
		}
	}
	if format := os.Getenv("SKILLMETA_OUTPUT_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if color := os.Getenv("SKILLMETA_COLOR"); color != "" {
		cfg.Output.Color = color
	}
	return cfg
}
