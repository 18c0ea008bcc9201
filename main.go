package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiKey       string
	channelID    string
	targetPath   string
	settingsPath string
	templatePath string
	dryRun       bool
	previewMode  bool
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "yt-splice",
	Short: "Splice a channel's latest YouTube videos into a static HTML page",
	Long: `Fetches a channel's recent uploads and latest completed livestream from the
YouTube Data API and replaces the region between
<!-- YOUTUBE_VIDEOS_START --> and <!-- YOUTUBE_VIDEOS_END --> in the target page.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		updater, err := NewUpdater(cfg)
		if err != nil {
			return err
		}

		_, err = updater.Run(cmd.Context())
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the markers in the target page and list its current videos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(cfg.TargetPath)
		if err != nil {
			return &FileError{Op: "read", Path: cfg.TargetPath, Err: err}
		}

		cards, err := InspectRegion(string(data), cfg.Markers)
		if err != nil {
			var markerErr *MarkerError
			if errors.As(err, &markerErr) {
				markerErr.Path = cfg.TargetPath
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s markers ok in %s, %d videos\n", color.GreenString("✓"), cfg.TargetPath, len(cards))
		for i, card := range cards {
			fmt.Fprintf(out, "  %d. [%s] %s %s (%s)\n", i+1, card.Badge, card.Date, card.Title, card.URL)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the managed region of the target page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		updated, err := SpliceFile(cfg.TargetPath, "", cfg.Padding, cfg.Markers, cfg.DryRun)
		if err != nil {
			return err
		}
		if cfg.DryRun {
			fmt.Fprint(cmd.OutOrStdout(), updated)
			return nil
		}
		logOK("Cleared videos in %s", cfg.TargetPath)
		return nil
	},
}

// loadConfig resolves settings, .env, environment and flags into a Config
func loadConfig() (Config, error) {
	SetDebugMode(debugMode)
	loadDotEnv()

	overrides := &ConfigOverrides{
		DryRun:  dryRun,
		Preview: previewMode,
	}
	if settingsPath != "" {
		overrides.SettingsPath = &settingsPath
	}
	if templatePath != "" {
		overrides.TemplatePath = &templatePath
	}
	if targetPath != "" {
		overrides.TargetPath = &targetPath
	}
	if channelID != "" {
		overrides.ChannelID = &channelID
	}
	if apiKey != "" {
		overrides.APIKey = &apiKey
	}

	return NewConfig(overrides)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings file (default .yt-splice/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&targetPath, "target", "", "HTML file to update (overrides target_path)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the updated page instead of writing it")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key")
	rootCmd.Flags().StringVar(&channelID, "channel-id", "", "YouTube channel ID (overrides channel_id)")
	rootCmd.Flags().StringVar(&templatePath, "template", "", "Path to custom card template file")
	rootCmd.Flags().BoolVar(&previewMode, "preview", false, "Log a Markdown preview of the generated cards")

	rootCmd.AddCommand(checkCmd, clearCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ Error: %v", err))
		stop()
		os.Exit(1)
	}
}
