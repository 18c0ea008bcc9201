package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestEmbeddedSettings(t *testing.T) {
	settings, err := embeddedSettings()
	require.NoError(t, err)

	assert.Equal(t, "index.html", settings.TargetPath)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3", settings.APIBaseURL)
	assert.Equal(t, 30*time.Second, settings.RequestTimeout)
	assert.Equal(t, 3, settings.Uploads.MaxResults)
	assert.True(t, settings.Livestream.Enabled)
	assert.Equal(t, 1, settings.Livestream.MaxResults)
	assert.Equal(t, "video", settings.Badges.Video)
	assert.Equal(t, "livestream", settings.Badges.Livestream)
	assert.Len(t, settings.Padding, 16)
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel_id: UCother\nuploads:\n  max_results: 10\n"), 0644))

	settings, err := loadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "UCother", settings.ChannelID)
	assert.Equal(t, 10, settings.Uploads.MaxResults)
	assert.True(t, settings.Livestream.Enabled, "unset sections keep their defaults")
	assert.Equal(t, "index.html", settings.TargetPath)
}

func TestLoadSettingsMissingFileFallsBack(t *testing.T) {
	settings, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Uploads.MaxResults)
}

func TestLoadSettingsRequired(t *testing.T) {
	_, err := loadSettingsRequired(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uploads: [not, a, map]\n"), 0644))
	_, err = loadSettingsRequired(path)
	assert.Error(t, err)
}

func TestResolveConfigPrecedence(t *testing.T) {
	settings, err := embeddedSettings()
	require.NoError(t, err)

	flagChannel := "UCflag"
	flagKey := "flag-key"
	flagTarget := "public/index.html"

	tests := []struct {
		name        string
		env         map[string]string
		overrides   *ConfigOverrides
		wantChannel string
		wantKey     string
		wantTarget  string
	}{
		{
			name:        "settings only",
			env:         map[string]string{},
			wantChannel: settings.ChannelID,
			wantTarget:  "index.html",
		},
		{
			name:        "environment",
			env:         map[string]string{"YOUTUBE_API_KEY": "env-key", "YOUTUBE_CHANNEL_ID": "UCenv"},
			wantChannel: "UCenv",
			wantKey:     "env-key",
			wantTarget:  "index.html",
		},
		{
			name: "flags win",
			env:  map[string]string{"YOUTUBE_API_KEY": "env-key", "YOUTUBE_CHANNEL_ID": "UCenv"},
			overrides: &ConfigOverrides{
				ChannelID:  &flagChannel,
				APIKey:     &flagKey,
				TargetPath: &flagTarget,
			},
			wantChannel: "UCflag",
			wantKey:     "flag-key",
			wantTarget:  "public/index.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := *settings
			cfg, err := resolveConfig(&s, tt.overrides, envMap(tt.env))
			require.NoError(t, err)

			assert.Equal(t, tt.wantChannel, cfg.ChannelID)
			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, tt.wantTarget, cfg.TargetPath)
			assert.Equal(t, DefaultMarkers, cfg.Markers)
		})
	}
}

func TestResolveConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty channel", func(s *Settings) { s.ChannelID = "" }},
		{"empty target", func(s *Settings) { s.TargetPath = "" }},
		{"empty base url", func(s *Settings) { s.APIBaseURL = "" }},
		{"zero uploads", func(s *Settings) { s.Uploads.MaxResults = 0 }},
		{"too many uploads", func(s *Settings) { s.Uploads.MaxResults = 51 }},
		{"zero livestreams", func(s *Settings) { s.Livestream.MaxResults = 0 }},
		{"negative timeout", func(s *Settings) { s.RequestTimeout = -time.Second }},
		{"unknown timezone", func(s *Settings) { s.Timezone = "Mars/Olympus_Mons" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := embeddedSettings()
			require.NoError(t, err)
			tt.mutate(settings)

			_, err = resolveConfig(settings, nil, envMap(nil))
			assert.Error(t, err)
		})
	}
}

func TestResolveConfigLivestreamDisabledSkipsCount(t *testing.T) {
	settings, err := embeddedSettings()
	require.NoError(t, err)
	settings.Livestream = LivestreamSettings{Enabled: false, MaxResults: 0}
	settings.Uploads.MaxResults = 10

	cfg, err := resolveConfig(settings, nil, envMap(nil))
	require.NoError(t, err)
	assert.False(t, cfg.Livestream.Enabled)
	assert.Equal(t, 10, cfg.Uploads.MaxResults)
}

func TestResolveConfigTimezone(t *testing.T) {
	settings, err := embeddedSettings()
	require.NoError(t, err)
	settings.Timezone = "UTC"
	settings.APIBaseURL = "https://api.example.com/v3/"

	cfg, err := resolveConfig(settings, nil, envMap(nil))
	require.NoError(t, err)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "https://api.example.com/v3", cfg.APIBaseURL)
}

func TestNewConfigWithSettingsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel_id: UCfile\nstrict_api_errors: true\n"), 0644))
	t.Setenv("YOUTUBE_API_KEY", "k")
	t.Setenv("YOUTUBE_CHANNEL_ID", "")

	cfg, err := NewConfig(&ConfigOverrides{SettingsPath: &path, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "UCfile", cfg.ChannelID)
	assert.Equal(t, "k", cfg.APIKey)
	assert.True(t, cfg.StrictAPIErrors)
	assert.True(t, cfg.DryRun)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewConfig(&ConfigOverrides{SettingsPath: &missing})
	assert.Error(t, err)
}
