package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// FetchErrorPolicy decides what the weather task does when a fetch fails.
type FetchErrorPolicy string

const (
	// PolicyExit stops the kiosk on the first failed fetch.
	PolicyExit FetchErrorPolicy = "exit"
	// PolicyKeep keeps the last good reading on screen and tries again on the
	// next interval.
	PolicyKeep FetchErrorPolicy = "keep"
)

// Config captures everything the kiosk reads at startup. It is never
// mutated after Load returns.
type Config struct {
	Location         string
	APIKey           string
	BaseURL          string
	Include          string
	WeatherRefresh   time.Duration
	RequestTimeout   time.Duration
	AssetDir         string
	FallbackIcon     string
	FetchErrorPolicy FetchErrorPolicy
	Theme            string
	LogFile          string
	LogLevel         string
	MetricsAddr      string
}

const (
	defaultConfigPath     = "~/.config/weatherpi/config.toml"
	defaultLocation       = "New York"
	defaultBaseURL        = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"
	defaultInclude        = "fcst,obs,histfcst,stats,days,hours,current,alerts"
	defaultWeatherRefresh = 600
	defaultAssetDir       = "./images"
	defaultFallbackIcon   = "3200.png"
	defaultTheme          = "Nightfox"
	defaultLogFile        = "~/.local/state/weatherpi/weatherpi.log"
	defaultLogLevel       = "info"

	envAPIKey   = "WEATHERPI_API_KEY"
	envLocation = "WEATHERPI_LOCATION"
	envLogLevel = "LOG_LEVEL"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Location:         defaultLocation,
		BaseURL:          defaultBaseURL,
		Include:          defaultInclude,
		WeatherRefresh:   defaultWeatherRefresh * time.Second,
		AssetDir:         defaultAssetDir,
		FallbackIcon:     defaultFallbackIcon,
		FetchErrorPolicy: PolicyExit,
		Theme:            defaultTheme,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
	}
}

// Load locates and parses the kiosk config, falling back to defaults when the
// file is missing. Environment variables (optionally seeded from a .env file
// in the working directory) override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, cfg.Validate()
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Location         string `toml:"location"`
		APIKey           string `toml:"api_key"`
		BaseURL          string `toml:"base_url"`
		Include          string `toml:"include"`
		WeatherRefresh   *int   `toml:"weather_refresh"`
		RequestTimeout   int    `toml:"request_timeout"`
		AssetDir         string `toml:"asset_dir"`
		FallbackIcon     string `toml:"fallback_icon"`
		FetchErrorPolicy string `toml:"fetch_error_policy"`
		Theme            string `toml:"theme"`
		LogFile          string `toml:"log_file"`
		LogLevel         string `toml:"log_level"`
		MetricsAddr      string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Location = orDefault(raw.Location, cfg.Location)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.BaseURL = strings.TrimRight(orDefault(raw.BaseURL, cfg.BaseURL), "/")
	cfg.Include = orDefault(raw.Include, cfg.Include)
	if raw.WeatherRefresh != nil {
		cfg.WeatherRefresh = time.Duration(*raw.WeatherRefresh) * time.Second
	}
	cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	cfg.AssetDir = mustExpand(orDefault(raw.AssetDir, cfg.AssetDir))
	cfg.FallbackIcon = orDefault(raw.FallbackIcon, cfg.FallbackIcon)
	cfg.FetchErrorPolicy = FetchErrorPolicy(strings.ToLower(orDefault(raw.FetchErrorPolicy, string(cfg.FetchErrorPolicy))))
	cfg.Theme = orDefault(raw.Theme, cfg.Theme)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.LogLevel = orDefault(raw.LogLevel, cfg.LogLevel)
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate reports settings the kiosk cannot run with.
func (c Config) Validate() error {
	if c.WeatherRefresh <= 0 {
		return fmt.Errorf("weather_refresh must be positive, got %s", c.WeatherRefresh)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.FetchErrorPolicy {
	case PolicyExit, PolicyKeep:
	default:
		return fmt.Errorf("fetch_error_policy must be %q or %q, got %q", PolicyExit, PolicyKeep, c.FetchErrorPolicy)
	}
	if strings.ContainsAny(c.FallbackIcon, `/\`) {
		return fmt.Errorf("fallback_icon must be a file name, got %q", c.FallbackIcon)
	}
	return nil
}

// WithPollSeconds returns a copy with the weather interval replaced. Values
// <= 0 leave the config unchanged.
func (c Config) WithPollSeconds(seconds int) Config {
	if seconds > 0 {
		c.WeatherRefresh = time.Duration(seconds) * time.Second
	}
	return c
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envLocation)); v != "" {
		cfg.Location = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
