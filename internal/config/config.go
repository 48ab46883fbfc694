package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/repolens/internal/freshness"
	"github.com/blackwell-systems/repolens/internal/health"
)

// Caps is the per-component health score budget.
type Caps = health.Caps

// Deductions holds the staleness signal weights.
type Deductions = freshness.Deductions

// Config is the top-level repolens configuration.
type Config struct {
	MaxDepth   int        `mapstructure:"max_depth"`
	IgnoreDirs []string   `mapstructure:"ignore_dirs"`
	Caps       Caps       `mapstructure:"caps"`
	Deductions Deductions `mapstructure:"deductions"`
	Output     Output     `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("max_depth", DefaultMaxDepth)
	v.SetDefault("ignore_dirs", DefaultIgnoreDirs)
	v.SetDefault("caps.claude_md", DefaultCaps.ClaudeMd)
	v.SetDefault("caps.module_docs", DefaultCaps.ModuleDocs)
	v.SetDefault("caps.freshness", DefaultCaps.Freshness)
	v.SetDefault("caps.skills", DefaultCaps.Skills)
	v.SetDefault("caps.context", DefaultCaps.Context)
	v.SetDefault("caps.enforcement", DefaultCaps.Enforcement)
	v.SetDefault("deductions.missing_export", DefaultDeductions.MissingExport)
	v.SetDefault("deductions.unlisted_export", DefaultDeductions.UnlistedExport)
	v.SetDefault("deductions.missing_import", DefaultDeductions.MissingImport)
	v.SetDefault("deductions.unlisted_import", DefaultDeductions.UnlistedImport)
	v.SetDefault("deductions.stale_mtime", DefaultDeductions.StaleMtime)
	v.SetDefault("deductions.empty_description", DefaultDeductions.EmptyDescription)
	v.SetDefault("deductions.grace_days", DefaultDeductions.GraceDays)
	v.SetDefault("deductions.cutoff_current", DefaultDeductions.CutoffCurrent)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// A score out of 100 only means something when the budget adds up.
	if sum := cfg.Caps.Sum(); sum != 100 {
		return nil, fmt.Errorf("health caps must sum to 100, got %d", sum)
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
