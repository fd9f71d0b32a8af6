package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RecentWindow is how far back the admin log view reaches.
const RecentWindow = 10 * 24 * time.Hour

// Entry is one parsed log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Raw     string
}

// ReadRecent returns entries from path and its rotated backups written after now-window,
// oldest first. Lines that are not JSON or carry no parseable time are skipped.
// A missing log file yields no entries.
func ReadRecent(path string, now time.Time, window time.Duration) ([]Entry, error) {
	files, err := logFiles(path)
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(-window)
	var out []Entry
	for _, f := range files {
		entries, err := readFile(f, cutoff)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// logFiles lists path and the backups lumberjack writes next to it (name-<timestamp>.ext).
func logFiles(path string) ([]string, error) {
	ext := filepath.Ext(path)
	prefix := strings.TrimSuffix(path, ext)
	backups, err := filepath.Glob(prefix + "-*" + ext)
	if err != nil {
		return nil, err
	}
	return append(backups, path), nil
}

func readFile(path string, cutoff time.Time) ([]Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, cutoff)
}

func parse(r io.Reader, cutoff time.Time) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		raw, _ := rec[zerolog.TimestampFieldName].(string)
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil || ts.Before(cutoff) {
			continue
		}
		level, _ := rec[zerolog.LevelFieldName].(string)
		msg, _ := rec[zerolog.MessageFieldName].(string)
		out = append(out, Entry{Time: ts, Level: level, Message: msg, Raw: line})
	}
	return out, sc.Err()
}
