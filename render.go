package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"
)

const (
	videoBadgeClass      = "news-badge"
	livestreamBadgeClass = "news-badge news-badge-live"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp as YYYY.MM.DD. When loc is nil the
// timestamp's own offset is kept, so a trailing Z renders the UTC date.
func FormatDate(ts string, loc *time.Location) (string, error) {
	var t time.Time
	var err error
	for _, layout := range timestampLayouts {
		t, err = time.Parse(layout, ts)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}

	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006.01.02"), nil
}

// cardView is the data a card template sees
type cardView struct {
	VideoID      string
	Title        string
	ThumbnailURL string
	Badge        string
	BadgeClass   string
	Date         string
}

// FragmentRenderer turns video items into HTML cards
type FragmentRenderer struct {
	tmpl     *template.Template
	badges   BadgeSettings
	location *time.Location
}

// NewFragmentRenderer parses the card template (override file or embedded)
func NewFragmentRenderer(cfg Config) (*FragmentRenderer, error) {
	source := defaultCardTemplate
	if cfg.TemplatePath != "" {
		data, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("reading card template: %w", err)
		}
		source = string(data)
	}

	tmpl, err := template.New("cards").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing card template: %w", err)
	}

	return &FragmentRenderer{
		tmpl:     tmpl,
		badges:   cfg.Badges,
		location: cfg.Location,
	}, nil
}

// Render produces the cards for items in order; no items yields an empty string
func (r *FragmentRenderer) Render(items []VideoItem) (string, error) {
	if len(items) == 0 {
		logWarn("No videos to generate HTML for")
		return "", nil
	}

	views := make([]cardView, 0, len(items))
	for _, item := range items {
		date, err := FormatDate(item.PublishedAt, r.location)
		if err != nil {
			return "", fmt.Errorf("formatting date for video %s: %w", item.VideoID, err)
		}

		view := cardView{
			VideoID:      item.VideoID,
			Title:        item.Title,
			ThumbnailURL: item.ThumbnailURL,
			Badge:        r.badges.Video,
			BadgeClass:   videoBadgeClass,
			Date:         date,
		}
		if item.Kind == KindLivestream {
			view.Badge = r.badges.Livestream
			view.BadgeClass = livestreamBadgeClass
		}
		views = append(views, view)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, views); err != nil {
		return "", fmt.Errorf("executing card template: %w", err)
	}
	return buf.String(), nil
}
