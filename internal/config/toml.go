// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/weather"
)

// EnvAPIURL overrides the backend URL from the config file.
const EnvAPIURL = "SOLAR_API_URL"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Backend BackendConfig `toml:"backend"`
	Weather WeatherConfig `toml:"weather"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// BackendConfig maps the prediction backend settings.
type BackendConfig struct {
	URL     *string `toml:"url"`
	Timeout *string `toml:"timeout"`
}

type WeatherConfig struct {
	Interval *string `toml:"interval"`
}

type StorageConfig struct {
	Path *string `toml:"path"`
}

type LogConfig struct {
	File *string `toml:"file"`
}

type MetricsConfig struct {
	Addr *string `toml:"addr"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Config is the resolved runtime configuration.
type Config struct {
	APIURL          string
	Timeout         time.Duration
	WeatherInterval time.Duration
	DBPath          string
	LogFile         string
	MetricsAddr     string
}

// Flags holds command-line values. Zero fields were not set by the user.
type Flags struct {
	APIURL          string
	Timeout         time.Duration
	WeatherInterval time.Duration
	DBPath          string
	LogFile         string
	MetricsAddr     string
}

// Resolve merges flags, environment, file and defaults, in that order of
// precedence. getenv is usually os.Getenv.
func Resolve(file FileConfig, flags Flags, getenv func(string) string) (Config, error) {
	cfg := Config{
		APIURL:          api.DefaultBaseURL,
		Timeout:         api.DefaultTimeout,
		WeatherInterval: weather.DefaultInterval,
		DBPath:          DefaultDBPath(),
		LogFile:         DefaultLogPath(),
	}

	applyString(&cfg.APIURL, file.Backend.URL)
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if flags.APIURL != "" {
		cfg.APIURL = flags.APIURL
	}

	if err := applyDuration(&cfg.Timeout, file.Backend.Timeout, "backend.timeout"); err != nil {
		return Config{}, err
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	if err := applyDuration(&cfg.WeatherInterval, file.Weather.Interval, "weather.interval"); err != nil {
		return Config{}, err
	}
	if flags.WeatherInterval > 0 {
		cfg.WeatherInterval = flags.WeatherInterval
	}

	applyString(&cfg.DBPath, file.Storage.Path)
	if flags.DBPath != "" {
		cfg.DBPath = flags.DBPath
	}

	applyString(&cfg.LogFile, file.Log.File)
	if flags.LogFile != "" {
		cfg.LogFile = flags.LogFile
	}

	applyString(&cfg.MetricsAddr, file.Metrics.Addr)
	if flags.MetricsAddr != "" {
		cfg.MetricsAddr = flags.MetricsAddr
	}

	return cfg, nil
}

func applyString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = strings.TrimSpace(*v)
	}
}

func applyDuration(dst *time.Duration, v *string, key string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, *v, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, d)
	}
	*dst = d
	return nil
}
