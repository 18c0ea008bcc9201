package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markers delimit the machine-managed region of the target document
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers are the comments the target page must carry
var DefaultMarkers = Markers{
	Start: "<!-- YOUTUBE_VIDEOS_START -->",
	End:   "<!-- YOUTUBE_VIDEOS_END -->",
}

// locateRegion returns the byte range strictly between the markers. Each
// marker must occur exactly once and the start must come first.
func locateRegion(doc string, m Markers) (start, end int, err error) {
	startCount := strings.Count(doc, m.Start)
	endCount := strings.Count(doc, m.End)

	if startCount == 0 || endCount == 0 {
		return 0, 0, &MarkerError{StartFound: startCount > 0, EndFound: endCount > 0}
	}
	if startCount > 1 {
		return 0, 0, &MarkerError{StartFound: true, EndFound: true, Reason: fmt.Sprintf("start marker appears %d times", startCount)}
	}
	if endCount > 1 {
		return 0, 0, &MarkerError{StartFound: true, EndFound: true, Reason: fmt.Sprintf("end marker appears %d times", endCount)}
	}

	start = strings.Index(doc, m.Start) + len(m.Start)
	end = strings.Index(doc, m.End)
	if end < start {
		return 0, 0, &MarkerError{StartFound: true, EndFound: true, Reason: "end marker precedes start marker"}
	}

	debugLog("markers found: start=%d end=%d", start-len(m.Start), end)
	return start, end, nil
}

// SpliceRegion replaces everything between the markers with a newline, the
// fragment and the padding. Text outside the markers is left byte-identical.
func SpliceRegion(doc, fragment, padding string, m Markers) (string, error) {
	start, end, err := locateRegion(doc, m)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(start + 1 + len(fragment) + len(padding) + len(doc) - end)
	b.WriteString(doc[:start])
	b.WriteString("\n")
	b.WriteString(fragment)
	b.WriteString(padding)
	b.WriteString(doc[end:])
	return b.String(), nil
}

// SpliceFile splices fragment into the document at path and returns the new
// content. Unless dryRun is set the file is replaced atomically; on any error
// the file on disk is left as it was.
func SpliceFile(path, fragment, padding string, m Markers, dryRun bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &FileError{Op: "stat", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Op: "read", Path: path, Err: err}
	}

	updated, err := SpliceRegion(string(data), fragment, padding, m)
	if err != nil {
		var markerErr *MarkerError
		if errors.As(err, &markerErr) {
			markerErr.Path = path
		}
		return "", err
	}

	if dryRun {
		return updated, nil
	}

	if err := writeFileAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
		return "", &FileError{Op: "write", Path: path, Err: err}
	}
	return updated, nil
}

// writeFileAtomic writes to a temp file next to path and renames it over path
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
