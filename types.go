package main

// ItemKind tells which query produced a video item
type ItemKind int

const (
	KindVideo ItemKind = iota
	KindLivestream
)

func (k ItemKind) String() string {
	if k == KindLivestream {
		return "livestream"
	}
	return "video"
}

// VideoItem is one search result reduced to what a card needs
type VideoItem struct {
	VideoID      string
	Title        string
	ThumbnailURL string
	PublishedAt  string
	Kind         ItemKind
}

// SearchResponse mirrors the parts of a YouTube Data API v3 search response we read
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

// SearchItem is a single entry of SearchResponse.Items
type SearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		PublishedAt string `json:"publishedAt"`
		ChannelID   string `json:"channelId"`
		Title       string `json:"title"`
		Thumbnails  struct {
			Default Thumbnail `json:"default"`
			Medium  Thumbnail `json:"medium"`
			High    Thumbnail `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

// Thumbnail is a single thumbnail rendition
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ProcessingStatus represents the outcome of an update run
type ProcessingStatus string

const (
	StatusUpdated ProcessingStatus = "updated"
	StatusSkipped ProcessingStatus = "skipped"
	StatusDryRun  ProcessingStatus = "dry-run"
)

// ProcessingResult tracks what an update run did
type ProcessingResult struct {
	Target         string
	Status         ProcessingStatus
	Videos         int
	Livestreams    int
	FragmentLength int
}
