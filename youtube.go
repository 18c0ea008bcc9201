// youtube.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

const (
	completedEventType  = "completed"
	responseExcerptSize = 500
)

// VideoClient runs the channel searches against the YouTube Data API
type VideoClient struct {
	getter JSONGetter
	cfg    Config
}

// NewVideoClient creates a client; the API key and channel id must be set
func NewVideoClient(getter JSONGetter, cfg Config) (*VideoClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key required: use --api-key flag or YOUTUBE_API_KEY environment variable")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("channel id required")
	}
	return &VideoClient{getter: getter, cfg: cfg}, nil
}

// RecentUploads returns the channel's latest videos, newest first
func (c *VideoClient) RecentUploads(ctx context.Context) ([]VideoItem, error) {
	logStep("Fetching latest videos...")
	items, err := c.search(ctx, c.cfg.Uploads.MaxResults, c.cfg.Uploads.EventType, KindVideo)
	if err != nil {
		return nil, fmt.Errorf("fetching latest videos: %w", err)
	}
	logOK("Found %d videos", len(items))
	return items, nil
}

// RecentLivestreams returns the channel's latest completed livestreams
func (c *VideoClient) RecentLivestreams(ctx context.Context) ([]VideoItem, error) {
	if !c.cfg.Livestream.Enabled {
		debugLog("livestream lookup disabled")
		return []VideoItem{}, nil
	}

	logStep("Fetching latest livestream...")
	items, err := c.search(ctx, c.cfg.Livestream.MaxResults, completedEventType, KindLivestream)
	if err != nil {
		return nil, fmt.Errorf("fetching latest livestream: %w", err)
	}
	logOK("Found %d livestreams", len(items))
	return items, nil
}

func (c *VideoClient) search(ctx context.Context, maxResults int, eventType string, kind ItemKind) ([]VideoItem, error) {
	searchURL := buildSearchURL(c.cfg.APIBaseURL, c.cfg.APIKey, c.cfg.ChannelID, maxResults, eventType)

	body, err := c.getter.FetchJSON(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	items, err := decodeSearchItems(body, kind, c.cfg.StrictAPIErrors)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.URL = redactURL(searchURL)
		}
		return nil, err
	}

	for i, item := range items {
		log.Printf("  %d. %s...", i+1, truncate(item.Title, 50))
	}
	return items, nil
}

// buildSearchURL builds a date-ordered video search for one channel
func buildSearchURL(baseURL, apiKey, channelID string, maxResults int, eventType string) string {
	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("channelId", channelID)
	params.Set("part", "snippet")
	params.Set("order", "date")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if eventType != "" {
		params.Set("eventType", eventType)
	}
	return baseURL + "/search?" + params.Encode()
}

// decodeSearchItems turns a search response into items. An error object or a
// missing items list yields an empty result unless strict is set.
func decodeSearchItems(body []byte, kind ItemKind, strict bool) ([]VideoItem, error) {
	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		err := newAPIError(apiErr)
		if strict {
			return nil, err
		}
		logFail("%v", err)
		log.Printf("Error payload:\n%s", gjson.GetBytes(body, "error|@pretty").Raw)
		return []VideoItem{}, nil
	}

	if !gjson.GetBytes(body, "items").Exists() {
		logWarn("No items in response")
		log.Printf("Response: %s", truncate(string(body), responseExcerptSize))
		return []VideoItem{}, nil
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Excerpt: truncate(string(body), 200), Err: err}
	}

	items := make([]VideoItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, VideoItem{
			VideoID:      it.ID.VideoID,
			Title:        it.Snippet.Title,
			ThumbnailURL: it.Snippet.Thumbnails.Medium.URL,
			PublishedAt:  it.Snippet.PublishedAt,
			Kind:         kind,
		})
	}
	return items, nil
}

func newAPIError(r gjson.Result) *APIError {
	if r.Type == gjson.String {
		return &APIError{Message: r.String()}
	}
	return &APIError{
		Code:    r.Get("code").Int(),
		Message: r.Get("message").String(),
		Reason:  r.Get("errors.0.reason").String(),
	}
}
