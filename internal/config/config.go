// Package config loads vcdview project settings.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skdltmxn/vcd-go/vcd"
)

// DefaultListen is the address the query server binds when none is configured.
const DefaultListen = "127.0.0.1:8080"

// Config holds settings loaded from .vcdview.yml.
type Config struct {
	Delimiter  string `yaml:"delimiter,omitempty"`
	Strict     bool   `yaml:"strict,omitempty"`
	IncludeNeg bool   `yaml:"includeNeg,omitempty"`
	Listen     string `yaml:"listen,omitempty"`
	Verbose    bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read .vcdview.yml or .vcdview.yaml from the given
// directory. Returns a config with defaults applied (not an error) if no
// config file exists.
func Load(dir string) (*Config, error) {
	var cfg Config
	for _, name := range []string{".vcdview.yml", ".vcdview.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		break
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Delimiter == "" {
		c.Delimiter = vcd.DefaultDelimiter
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

// Options converts the parse-related settings into vcd options.
func (c *Config) Options(logger *slog.Logger) []vcd.Option {
	return []vcd.Option{
		vcd.WithDelimiter(c.Delimiter),
		vcd.WithStrict(c.Strict),
		vcd.WithLogger(logger),
	}
}
