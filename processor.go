// processor.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// Updater runs the fetch, render and splice workflow once
type Updater struct {
	cfg      Config
	videos   *VideoClient
	renderer *FragmentRenderer
	out      io.Writer
}

// NewUpdater creates an updater wired to the YouTube API over HTTP
func NewUpdater(cfg Config) (*Updater, error) {
	videos, err := NewVideoClient(NewJSONFetcher(cfg.RequestTimeout), cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := NewFragmentRenderer(cfg)
	if err != nil {
		return nil, err
	}

	return &Updater{
		cfg:      cfg,
		videos:   videos,
		renderer: renderer,
		out:      os.Stdout,
	}, nil
}

// Run fetches uploads then the livestream, renders them and splices the cards
// into the target. An empty fragment leaves the target untouched.
func (u *Updater) Run(ctx context.Context) (*ProcessingResult, error) {
	log.Printf("=== YouTube Video Updater ===")
	log.Printf("Channel ID: %s", u.cfg.ChannelID)
	log.Printf("API Key exists: %t", u.cfg.APIKey != "")

	result := &ProcessingResult{Target: u.cfg.TargetPath}

	uploads, err := u.videos.RecentUploads(ctx)
	if err != nil {
		return nil, err
	}
	livestreams, err := u.videos.RecentLivestreams(ctx)
	if err != nil {
		return nil, err
	}
	result.Videos = len(uploads)
	result.Livestreams = len(livestreams)

	items := make([]VideoItem, 0, len(uploads)+len(livestreams))
	items = append(items, uploads...)
	items = append(items, livestreams...)

	logStep("Generating HTML...")
	fragment, err := u.renderer.Render(items)
	if err != nil {
		return nil, fmt.Errorf("generating HTML: %w", err)
	}
	result.FragmentLength = len(fragment)
	log.Printf("Generated HTML length: %d characters", len(fragment))

	if fragment == "" {
		logWarn("No HTML generated, skipping file update")
		result.Status = StatusSkipped
		return result, nil
	}

	if u.cfg.Preview {
		if preview, err := PreviewMarkdown(fragment); err != nil {
			logWarn("preview unavailable: %v", err)
		} else {
			log.Printf("Preview:\n%s", preview)
		}
	}

	logStep("Updating %s...", u.cfg.TargetPath)
	updated, err := SpliceFile(u.cfg.TargetPath, fragment, u.cfg.Padding, u.cfg.Markers, u.cfg.DryRun)
	if err != nil {
		return nil, err
	}

	if u.cfg.DryRun {
		fmt.Fprint(u.out, updated)
		logOK("Dry run: %s not written", u.cfg.TargetPath)
		result.Status = StatusDryRun
		return result, nil
	}

	logOK("Successfully updated YouTube videos!")
	result.Status = StatusUpdated
	return result, nil
}
