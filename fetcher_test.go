package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewJSONFetcher(t *testing.T) {
	fetcher := NewJSONFetcher(5 * time.Second)

	if fetcher == nil {
		t.Fatal("NewJSONFetcher() returned nil")
	}
	if fetcher.client == nil {
		t.Error("NewJSONFetcher() did not initialize HTTP client")
	}
	if fetcher.timeout != 5*time.Second {
		t.Errorf("NewJSONFetcher() timeout = %v, want %v", fetcher.timeout, 5*time.Second)
	}
}

func TestFetchJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
	}{
		{"valid object", http.StatusOK, `{"items": []}`, false, 0},
		{"error status with JSON body", http.StatusForbidden, `{"error": {"code": 403}}`, false, 0},
		{"html body", http.StatusOK, "<html>oops</html>", true, http.StatusOK},
		{"empty body", http.StatusBadGateway, "", true, http.StatusBadGateway},
		{"truncated JSON", http.StatusOK, `{"items": [`, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			fetcher := &JSONFetcher{client: server.Client()}
			body, err := fetcher.FetchJSON(context.Background(), server.URL)

			if (err != nil) != tt.wantErr {
				t.Fatalf("FetchJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if string(body) != tt.body {
					t.Errorf("FetchJSON() body = %q, want %q", body, tt.body)
				}
				return
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("FetchJSON() should return ParseError, got %T", err)
			}
			if parseErr.StatusCode != tt.wantStatus {
				t.Errorf("ParseError.StatusCode = %d, want %d", parseErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestFetchJSONNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	fetcher := NewJSONFetcher(0)
	_, err := fetcher.FetchJSON(context.Background(), serverURL+"/search?key=secret")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchJSON() should return NetworkError, got %T (%v)", err, err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error %q leaks the API key", err.Error())
	}
}

func TestFetchJSONTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := &JSONFetcher{client: server.Client(), timeout: 50 * time.Millisecond}
	_, err := fetcher.FetchJSON(context.Background(), server.URL)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("FetchJSON() error = %v, want deadline exceeded", err)
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"with key", "https://api.example.com/search?channelId=UC1&key=secret", "https://api.example.com/search?channelId=UC1&key=REDACTED"},
		{"without key", "https://api.example.com/search?channelId=UC1", "https://api.example.com/search?channelId=UC1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactURL(tt.in); got != tt.want {
				t.Errorf("redactURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
