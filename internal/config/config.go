// Package config loads client configuration from, in order of precedence,
// command-line flags, FOODTRACK_* environment variables, and an optional
// config file at <user config dir>/foodtrack/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is everything the client needs to talk to the backend and drive
// local devices.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string `mapstructure:"api_url"`
	// Timeout bounds every HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`
	// CaptureCommand is the external command used for camera capture. The
	// output file path is appended as the final argument.
	CaptureCommand []string `mapstructure:"capture_command"`
	// SpeakCommand is the external command used for speech output. The text
	// is appended as the final argument.
	SpeakCommand []string `mapstructure:"speak_command"`
}

const envPrefix = "FOODTRACK"

// Load reads the configuration. A missing config file is fine; a malformed
// one is an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("timeout", "30s")
	v.SetDefault("capture_command", []string{"fswebcam", "--no-banner"})
	v.SetDefault("speak_command", []string{"espeak"})

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "foodtrack"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:8000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &cfg, nil
}
