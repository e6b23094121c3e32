package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mazekit/mazekit/pkg/pipeline"
)

// configFile is the config file name searched for in the working
// directory and in ~/.config/mazekit/.
const configFile = "mazekit.toml"

// Config holds file-backed defaults for CLI flags. Every value is
// optional; flags set on the command line override it.
type Config struct {
	Generate GenerateConfig    `toml:"generate"`
	Render   RenderConfig      `toml:"render"`
	Cache    CacheConfig       `toml:"cache"`
	Server   ServerConfig      `toml:"server"`
	Archive  ArchiveConfig     `toml:"archive"`
	Masks    map[string]string `toml:"masks"`
}

// GenerateConfig defaults the generate command's flags.
type GenerateConfig struct {
	Topology  string  `toml:"topology"`
	Rows      int     `toml:"rows"`
	Cols      int     `toml:"cols"`
	Levels    int     `toml:"levels"`
	Algorithm string  `toml:"algorithm"`
	Seed      int64   `toml:"seed"`
	Bias      float64 `toml:"bias"`
	Braid     float64 `toml:"braid"`
}

// RenderConfig defaults the render command's flags.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Style   string   `toml:"style"`
	Scale   float64  `toml:"scale"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`

	// CacheScope prefixes every cache key when the redis cache is in
	// use, keeping deployments that share one redis instance apart.
	CacheScope string `toml:"cache_scope"`
}

// ArchiveConfig selects the archive backend.
type ArchiveConfig struct {
	// Backend is "file" (default) or "mongo".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means
	// ~/.config/mazekit/archive.
	Dir string `toml:"dir"`

	// URI and Database configure the mongo backend.
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// loadConfig reads the config file at path, or searches the standard
// locations when path is empty. A missing file is not an error; the
// zero Config is returned.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		path = findConfig()
		if path == "" {
			return &Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// findConfig returns the first config file found in the search order,
// or empty when none exists.
func findConfig() string {
	if _, err := os.Stat(configFile); err == nil {
		return configFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", appName, configFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// generateOptions seeds pipeline options from the config file.
// Unset fields stay zero and pick up pipeline defaults.
func (c *Config) generateOptions() pipeline.Options {
	return pipeline.Options{
		Topology:  c.Generate.Topology,
		Rows:      c.Generate.Rows,
		Cols:      c.Generate.Cols,
		Levels:    c.Generate.Levels,
		Algorithm: c.Generate.Algorithm,
		Seed:      c.Generate.Seed,
		Bias:      c.Generate.Bias,
		Braid:     c.Generate.Braid,
	}
}

// renderOptions seeds render options from the config file.
func (c *Config) renderOptions() pipeline.Options {
	return pipeline.Options{
		Formats: append([]string(nil), c.Render.Formats...),
		Style:   c.Render.Style,
		Scale:   c.Render.Scale,
	}
}

// resolveMask resolves the --mask argument: a named mask from the
// config file wins, otherwise the argument is read as a file path.
func (c *Config) resolveMask(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if doc, ok := c.Masks[ref]; ok {
		return doc, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read mask %s: %w", ref, err)
	}
	return string(data), nil
}
