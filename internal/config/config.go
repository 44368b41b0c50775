// Package config loads asterixfeed's runtime configuration from a
// layered stack of defaults, an optional YAML file, and environment
// variables, following the same viper-based pattern the rest of the
// ecosystem uses for daemon configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything asterixfeed needs to start listening and
// logging.
type Config struct {
	ListenAddr string
	StatsAddr  string
	Categories []int
	Log        LogConfig
}

// LogConfig controls the logging package's output.
type LogConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Verbose    bool
}

// Load reads configuration from (in increasing precedence) built-in
// defaults, a YAML config file, and ASTERIXFEED_-prefixed environment
// variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8600")
	v.SetDefault("stats_addr", ":8601")
	v.SetDefault("categories", []int{1, 2})
	v.SetDefault("log.dir", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.verbose", false)

	v.SetConfigName("asterixfeed")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/asterixfeed")
	v.AddConfigPath(".")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if envPath := os.Getenv("ASTERIXFEED_CONFIG_PATH"); envPath != "" {
		v.SetConfigFile(envPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ASTERIXFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ListenAddr: v.GetString("listen_addr"),
		StatsAddr:  v.GetString("stats_addr"),
		Categories: v.GetIntSlice("categories"),
		Log: LogConfig{
			Dir:        v.GetString("log.dir"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
			Verbose:    v.GetBool("log.verbose"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("categories must list at least one category")
	}
	for _, cat := range cfg.Categories {
		if cat < 0 || cat > 255 {
			return fmt.Errorf("category %d out of range 0-255", cat)
		}
	}
	return nil
}
