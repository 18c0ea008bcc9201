package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// JSONGetter fetches a URL and returns its body once it is known to be JSON
type JSONGetter interface {
	FetchJSON(ctx context.Context, rawURL string) ([]byte, error)
}

// JSONFetcher is the HTTP implementation of JSONGetter
type JSONFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewJSONFetcher creates a fetcher; a zero timeout leaves requests unbounded
func NewJSONFetcher(timeout time.Duration) *JSONFetcher {
	return &JSONFetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// FetchJSON issues a GET and returns the full body if it parses as JSON.
// Non-2xx responses are not errors here: the API reports failures in the body.
func (f *JSONFetcher) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	safeURL := redactURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", safeURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: safeURL, Err: stripURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: safeURL, Err: err}
	}
	debugLog("GET %s -> HTTP %d, %d bytes", safeURL, resp.StatusCode, len(body))

	if !gjson.ValidBytes(body) {
		return nil, &ParseError{
			URL:        safeURL,
			StatusCode: resp.StatusCode,
			Excerpt:    truncate(string(body), 200),
		}
	}

	return body, nil
}

// redactURL hides the API key so URLs can be logged
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("key") == "" {
		return rawURL
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// stripURLError drops the *url.Error wrapper, whose message repeats the unredacted URL
func stripURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
