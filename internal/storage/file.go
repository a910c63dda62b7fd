package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"poolTags/internal/model"
)

const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// FileStorage writes the full tag list to a file, replacing earlier output.
type FileStorage struct {
	path   string
	format string
	mu     sync.Mutex
}

func NewFileStorage(path, format string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	switch format {
	case "":
		format = FormatJSONL
	case FormatJSONL, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &FileStorage{path: path, format: format}, nil
}

// PutTags writes tags to a temporary file and renames it into place.
func (s *FileStorage) PutTags(_ context.Context, _ string, tags []model.ContractTag) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpPath := s.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}

	writer := bufio.NewWriter(file)
	if err := s.encode(writer, tags); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

func (s *FileStorage) encode(writer *bufio.Writer, tags []model.ContractTag) error {
	if tags == nil {
		tags = []model.ContractTag{}
	}

	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tags); err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(writer)
		enc.SetIndent(2)
		if err := enc.Encode(tags); err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
	default:
		for _, tag := range tags {
			line, err := json.Marshal(tag)
			if err != nil {
				return fmt.Errorf("marshal tag: %w", err)
			}
			if _, err := writer.Write(line); err != nil {
				return fmt.Errorf("write tag: %w", err)
			}
			if err := writer.WriteByte('\n'); err != nil {
				return fmt.Errorf("write newline: %w", err)
			}
		}
	}
	return nil
}
