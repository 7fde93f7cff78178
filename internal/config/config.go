// Package config provides configuration management for contentdef using Viper.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/contentdef/internal/errors"
	"github.com/thoreinstein/contentdef/internal/paths"
	"github.com/thoreinstein/contentdef/pkg/fileutil"
)

// EnvPrefix is the prefix for environment overrides, e.g. CONTENTDEF_CONTENT_DIR.
const EnvPrefix = "CONTENTDEF"

// DefaultBackups is the default backup retention per collection.
const DefaultBackups = 5

// Config represents the top-level configuration structure.
type Config struct {
	Version     int                         `mapstructure:"version" yaml:"version"`
	ContentDir  string                      `mapstructure:"content_dir" yaml:"content_dir"`
	Collections map[string]CollectionConfig `mapstructure:"collections" yaml:"collections"`
	// Backups is how many copies of overwritten files are kept per
	// collection. Zero disables backups.
	Backups int `mapstructure:"backups" yaml:"backups"`
}

// CollectionConfig locates one collection inside ContentDir.
type CollectionConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version:    1,
		ContentDir: "content",
		Collections: map[string]CollectionConfig{
			"posts": {Dir: "posts"},
		},
		Backups: DefaultBackups,
	}
}

// CollectionNames returns the configured collection names in sorted order.
func (c *Config) CollectionNames() []string {
	names := make([]string, 0, len(c.Collections))
	for name := range c.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init resets Viper and installs defaults and environment bindings.
// Call this once at startup before Load.
func Init() {
	viper.Reset()
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("content_dir", def.ContentDir)
	viper.SetDefault("collections.posts.dir", def.Collections["posts"].Dir)
	viper.SetDefault("backups", def.Backups)
}

// Load reads the configuration file. An explicit path must exist. With an
// empty path, contentdef.yaml in the working directory is tried first, then
// the per-user config file; if neither exists the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = discover()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "config file not found at %s", path)
	}

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	dir, err := paths.ExpandHome(cfg.ContentDir)
	if err != nil {
		return nil, errors.Wrap(err, "resolving content_dir")
	}
	cfg.ContentDir = dir

	return &cfg, nil
}

// Used returns the config file Viper read, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}

func discover() string {
	for _, candidate := range []string{paths.ProjectConfigName, paths.ConfigFile()} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrapf(err, "writing config to %s", path)
	}
	return nil
}
