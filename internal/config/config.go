// Package config holds runtime configuration for polaris, populated from
// .polaris.yaml, POLARIS_* environment variables, and CLI flags via viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/astralhq/polaris/internal/score"
)

// Config holds all runtime configuration for a polaris process.
type Config struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	MCPPort        int           `mapstructure:"mcp_port"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	TelemetryPath  string        `mapstructure:"telemetry_path"`
	HistoryEnabled bool          `mapstructure:"history_enabled"`
	HistoryPath    string        `mapstructure:"history_path"`
	Weights        score.Weights `mapstructure:"weights"`
	Verbose        bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	defaults := score.DefaultWeights()

	viper.SetDefault("host", "")
	viper.SetDefault("port", 8080)
	viper.SetDefault("mcp_port", 8391)
	viper.SetDefault("cors_origins", []string{"*"})
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("history_enabled", false)
	viper.SetDefault("history_path", ".polaris/history.db")
	viper.SetDefault("weights.urgency", defaults.Urgency)
	viper.SetDefault("weights.importance", defaults.Importance)
	viper.SetDefault("weights.effort", defaults.Effort)
	viper.SetDefault("weights.dependency", defaults.Dependency)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
