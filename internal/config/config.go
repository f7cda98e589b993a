// Package config provides configuration loading for posture.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (POSTURE_*) > config file (~/.posture.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all posture configuration options.
type Config struct {
	ScanBaseURL   string         `mapstructure:"scan_base_url" yaml:"scan_base_url"`
	OutputFormat  string         `mapstructure:"output_format" yaml:"output_format"`
	Timeout       time.Duration  `mapstructure:"timeout" yaml:"timeout"`
	Endpoints     []string       `mapstructure:"endpoints" yaml:"endpoints"`
	WhoisFallback bool           `mapstructure:"whois_fallback" yaml:"whois_fallback"`
	Weights       map[string]int `mapstructure:"weights" yaml:"weights"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat:  "table",
		Timeout:       15 * time.Second,
		WhoisFallback: true,
	}
}

// Load reads configuration from ~/.posture.yaml and environment variables.
// It does NOT apply CLI flag overrides — call ApplyFlags for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".posture")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("POSTURE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("POSTURE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("base-url") {
		val, _ := flags.GetString("base-url")
		cfg.ScanBaseURL = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.Timeout = val
	}
	if flags.Changed("whois-fallback") {
		val, _ := flags.GetBool("whois-fallback")
		cfg.WhoisFallback = val
	}
}

// ConfigFilePath returns the default config file path (~/.posture.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".posture.yaml"
	}
	return filepath.Join(home, ".posture.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "table")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("whois_fallback", true)
}
