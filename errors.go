package main

import "fmt"

// NetworkError is returned when a request could not be sent or its body could not be read
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response body is not valid JSON
type ParseError struct {
	URL        string
	StatusCode int
	Excerpt    string
	Err        error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse JSON from %s (HTTP %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to parse JSON from %s (HTTP %d): %q", e.URL, e.StatusCode, e.Excerpt)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed API response carrying an error object
type APIError struct {
	Code    int64
	Message string
	Reason  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("YouTube API error %d: %s", e.Code, e.Message)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// MarkerError reports a target document whose marker pair is unusable
type MarkerError struct {
	Path       string
	StartFound bool
	EndFound   bool
	Reason     string
}

func (e *MarkerError) Error() string {
	where := "document"
	if e.Path != "" {
		where = e.Path
	}
	if !e.StartFound || !e.EndFound {
		return fmt.Sprintf("markers not found in %s (start found: %t, end found: %t)", where, e.StartFound, e.EndFound)
	}
	return fmt.Sprintf("invalid markers in %s: %s", where, e.Reason)
}

// FileError wraps a read or write failure on the target document
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
