package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir = ".yt-splice"
	maxSearchResults = 50
)

//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/video-card.html
var defaultCardTemplate string

// ConfigOverrides carries command line values that win over settings and environment
type ConfigOverrides struct {
	SettingsPath *string
	TemplatePath *string
	TargetPath   *string
	ChannelID    *string
	APIKey       *string
	DryRun       bool
	Preview      bool
}

// QuerySettings configures the uploads search
type QuerySettings struct {
	MaxResults int    `yaml:"max_results"`
	EventType  string `yaml:"event_type"`
}

// LivestreamSettings configures the completed livestream search
type LivestreamSettings struct {
	Enabled    bool `yaml:"enabled"`
	MaxResults int  `yaml:"max_results"`
}

// BadgeSettings holds the badge labels shown on cards
type BadgeSettings struct {
	Video      string `yaml:"video"`
	Livestream string `yaml:"livestream"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	ChannelID       string             `yaml:"channel_id"`
	TargetPath      string             `yaml:"target_path"`
	APIBaseURL      string             `yaml:"api_base_url"`
	RequestTimeout  time.Duration      `yaml:"request_timeout"`
	Timezone        string             `yaml:"timezone"`
	StrictAPIErrors bool               `yaml:"strict_api_errors"`
	Padding         string             `yaml:"padding"`
	Uploads         QuerySettings      `yaml:"uploads"`
	Livestream      LivestreamSettings `yaml:"livestream"`
	Badges          BadgeSettings      `yaml:"badges"`
}

// Config is the resolved, read-only configuration handed to every component
type Config struct {
	APIKey          string
	ChannelID       string
	TargetPath      string
	TemplatePath    string
	APIBaseURL      string
	RequestTimeout  time.Duration
	Location        *time.Location
	StrictAPIErrors bool
	Padding         string
	Uploads         QuerySettings
	Livestream      LivestreamSettings
	Badges          BadgeSettings
	Markers         Markers
	DryRun          bool
	Preview         bool
}

// NewConfig loads settings, applies environment and overrides, and validates the result
func NewConfig(overrides *ConfigOverrides) (Config, error) {
	var settings *Settings
	var err error
	if overrides != nil && overrides.SettingsPath != nil {
		// Explicit settings file must exist
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
		if err != nil {
			return Config{}, fmt.Errorf("loading settings %s: %w", *overrides.SettingsPath, err)
		}
	} else {
		if err := ensureConfigExists(); err != nil {
			return Config{}, fmt.Errorf("ensuring config files exist: %w", err)
		}
		settings, err = loadSettings(filepath.Join(defaultConfigDir, "settings.yaml"))
		if err != nil {
			return Config{}, fmt.Errorf("loading settings: %w", err)
		}
	}

	return resolveConfig(settings, overrides, os.Getenv)
}

func resolveConfig(settings *Settings, overrides *ConfigOverrides, getenv func(string) string) (Config, error) {
	if overrides == nil {
		overrides = &ConfigOverrides{}
	}

	cfg := Config{
		APIKey:          getenv("YOUTUBE_API_KEY"),
		ChannelID:       settings.ChannelID,
		TargetPath:      settings.TargetPath,
		APIBaseURL:      strings.TrimRight(settings.APIBaseURL, "/"),
		RequestTimeout:  settings.RequestTimeout,
		StrictAPIErrors: settings.StrictAPIErrors,
		Padding:         settings.Padding,
		Uploads:         settings.Uploads,
		Livestream:      settings.Livestream,
		Badges:          settings.Badges,
		Markers:         DefaultMarkers,
		DryRun:          overrides.DryRun,
		Preview:         overrides.Preview,
	}

	if env := strings.TrimSpace(getenv("YOUTUBE_CHANNEL_ID")); env != "" {
		cfg.ChannelID = env
	}
	if overrides.ChannelID != nil && *overrides.ChannelID != "" {
		cfg.ChannelID = *overrides.ChannelID
	}
	if overrides.APIKey != nil && *overrides.APIKey != "" {
		cfg.APIKey = *overrides.APIKey
	}
	if overrides.TargetPath != nil && *overrides.TargetPath != "" {
		cfg.TargetPath = *overrides.TargetPath
	}
	if overrides.TemplatePath != nil {
		cfg.TemplatePath = *overrides.TemplatePath
	}

	if settings.Timezone != "" {
		loc, err := time.LoadLocation(settings.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
		}
		cfg.Location = loc
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ChannelID) == "" {
		return errors.New("channel id required: set channel_id, YOUTUBE_CHANNEL_ID or --channel-id")
	}
	if strings.TrimSpace(c.TargetPath) == "" {
		return errors.New("target_path must not be empty")
	}
	if c.APIBaseURL == "" {
		return errors.New("api_base_url must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.Uploads.MaxResults < 1 || c.Uploads.MaxResults > maxSearchResults {
		return fmt.Errorf("uploads.max_results must be between 1 and %d, got %d", maxSearchResults, c.Uploads.MaxResults)
	}
	if c.Livestream.Enabled && (c.Livestream.MaxResults < 1 || c.Livestream.MaxResults > maxSearchResults) {
		return fmt.Errorf("livestream.max_results must be between 1 and %d, got %d", maxSearchResults, c.Livestream.MaxResults)
	}
	return nil
}

// loadSettings loads settings from YAML file with fallback to the embedded defaults
func loadSettings(settingsPath string) (*Settings, error) {
	settings, err := embeddedSettings()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", settingsPath, err)
	}
	return settings, nil
}

// loadSettingsRequired loads settings from YAML file, failing if file doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	settings, err := embeddedSettings()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", settingsPath, err)
	}
	return settings, nil
}

func embeddedSettings() (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}
	return &settings, nil
}

// ensureConfigExists creates config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsFile := filepath.Join(defaultConfigDir, "settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}

// loadDotEnv reads .env from the working directory; variables already set win
func loadDotEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("YT_SPLICE_DOTENV"))) {
	case "0", "false", "off", "no":
		return
	}

	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		logWarn("failed to load .env: %v", err)
		return
	}
	log.Printf("loaded env from .env")
}
