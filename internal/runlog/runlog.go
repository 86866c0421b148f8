// Package runlog keeps a local history of match runs as a JSONL file.
// Recording is best-effort and never blocks or fails a run.
package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry represents a single recorded run.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	Output     string    `json:"output,omitempty"`
	KeyColumns []string  `json:"keys"`
	Value      string    `json:"value"`
	Accumulate bool      `json:"accumulate,omitempty"`
	IndexKeys  int       `json:"indexKeys"`
	Matched    int       `json:"matched"`
	Total      int       `json:"total"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
}

// Stats holds aggregated run history statistics.
type Stats struct {
	TotalRuns    int     `json:"total_runs"`
	TotalMatched int     `json:"total_matched"`
	TotalRows    int     `json:"total_rows"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	ErrorCount   int     `json:"error_count"`
}

// Store manages the run history file.
type Store struct {
	Path    string
	Enabled bool
}

// DefaultStore returns a Store at ~/.xlmatch/history.jsonl.
func DefaultStore() *Store {
	home, _ := os.UserHomeDir()
	return &Store{
		Path:    filepath.Join(home, ".xlmatch", "history.jsonl"),
		Enabled: true,
	}
}

// Record appends an entry to the history file. Best-effort: any failure
// is swallowed so a broken history file never breaks a run.
func (s *Store) Record(e Entry) {
	if !s.Enabled || s.Path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// Read returns all recorded entries, oldest first. Malformed lines are
// skipped. A missing file yields no entries and no error.
func (s *Store) Read() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Summary aggregates stats over the whole history.
func (s *Store) Summary() (*Stats, error) {
	entries, err := s.Read()
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	var totalDuration int64
	for _, e := range entries {
		stats.TotalRuns++
		stats.TotalMatched += e.Matched
		stats.TotalRows += e.Total
		totalDuration += e.DurationMs
		if e.Error != "" {
			stats.ErrorCount++
		}
	}
	if stats.TotalRuns > 0 {
		stats.AvgDuration = float64(totalDuration) / float64(stats.TotalRuns)
	}
	return stats, nil
}

// Clear truncates the history file.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil
	}
	return os.Truncate(s.Path, 0)
}
