// Package history records recently parsed videos in a TSV file.
// Uses atomic writes (temp+rename) to prevent data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vembed/internal/config"
	"vembed/internal/media"
)

// TSV columns: platform, video_id, source_url, parsed_at
const numColumns = 4

// MaxEntries bounds the history file; the oldest entries are dropped first.
const MaxEntries = 500

// Entry is one remembered video.
type Entry struct {
	Platform  media.Platform `json:"platform"`
	VideoID   string         `json:"video_id"`
	SourceURL string         `json:"source_url"`
	ParsedAt  time.Time      `json:"parsed_at"`
}

// Load reads the history file and returns all entries, oldest first.
func Load() ([]Entry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Save records ref. An existing entry for the same video moves to the end.
func Save(ref media.VideoReference, at time.Time) error {
	entries, _ := Load()

	entry := Entry{
		Platform:  ref.Platform,
		VideoID:   ref.VideoID,
		SourceURL: ref.SourceURL,
		ParsedAt:  at,
	}

	kept := entries[:0]
	for _, e := range entries {
		if !e.same(entry) {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)
	if len(kept) > MaxEntries {
		kept = kept[len(kept)-MaxEntries:]
	}

	return write(kept)
}

// Remove deletes the entry for a video.
func Remove(platform media.Platform, videoID string) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	target := Entry{Platform: platform, VideoID: videoID}
	var filtered []Entry
	for _, e := range entries {
		if !e.same(target) {
			filtered = append(filtered, e)
		}
	}

	return write(filtered)
}

// FormatForDisplay creates one line per entry, newest first.
func FormatForDisplay(entries []Entry) []string {
	items := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		items = append(items, fmt.Sprintf("%-9s %-20s %s", e.Platform, e.VideoID, e.SourceURL))
	}
	return items
}

func (e Entry) same(o Entry) bool {
	return e.Platform == o.Platform && e.VideoID == o.VideoID
}

// write replaces the history file with entries via temp file + rename.
func write(entries []Entry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// parseLine parses a TSV line into an Entry.
func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	platform, err := media.ParsePlatform(fields[0])
	if err != nil {
		return Entry{}, err
	}
	ts, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("bad timestamp %q: %w", fields[3], err)
	}

	return Entry{
		Platform:  platform,
		VideoID:   fields[1],
		SourceURL: fields[2],
		ParsedAt:  time.Unix(ts, 0),
	}, nil
}

// formatLine converts an Entry to a TSV line.
func formatLine(e Entry) string {
	return strings.Join([]string{
		e.Platform.String(),
		e.VideoID,
		e.SourceURL,
		strconv.FormatInt(e.ParsedAt.Unix(), 10),
	}, "\t")
}
