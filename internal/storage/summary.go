package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"poolTags/internal/model"
)

// SummaryStore persists the summary of the last export to disk.
type SummaryStore struct {
	path string
}

func NewSummaryStore(path string) *SummaryStore {
	return &SummaryStore{path: path}
}

func (s *SummaryStore) Load() (model.FetchSummary, bool, error) {
	if s == nil || s.path == "" {
		return model.FetchSummary{}, false, nil
	}

	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.FetchSummary{}, false, nil
		}
		return model.FetchSummary{}, false, fmt.Errorf("stat summary: %w", err)
	}
	if stat.IsDir() {
		return model.FetchSummary{}, false, fmt.Errorf("summary path is a directory")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.FetchSummary{}, false, fmt.Errorf("read summary: %w", err)
	}

	var summary model.FetchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.FetchSummary{}, false, fmt.Errorf("parse summary: %w", err)
	}
	return summary, true, nil
}

// Save stamps FinishedAt and writes the summary atomically.
func (s *SummaryStore) Save(summary model.FetchSummary) error {
	if s == nil || s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create summary dir: %w", err)
		}
	}

	summary.FinishedAt = time.Now().UTC().Format(time.RFC3339Nano)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write summary tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename summary: %w", err)
	}
	return nil
}
