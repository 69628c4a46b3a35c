package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// Storage implements a link store backed by an append-only JSONL file.
// The file is replayed on open; later records win and deletes are written
// as tombstones.
type Storage struct {
	filePath    string
	links       map[string]string
	mu          sync.RWMutex
	fileWriteMu sync.Mutex
}

// NewStorage creates a file-backed storage at the provided path.
func NewStorage(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	s := &Storage{
		filePath: filePath,
		links:    make(map[string]string),
	}

	if err := s.loadFromFile(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the content stored under key.
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, found := s.links[key]
	if !found {
		return "", fmt.Errorf("%w: %s", storage.ErrLinkNotFound, key)
	}

	return content, nil
}

// Put appends a record for key and makes it visible to readers.
func (s *Storage) Put(ctx context.Context, key, url string) error {
	if err := s.saveRecordToFile(model.LinkRecord{Key: key, URL: url}); err != nil {
		return err
	}

	s.mu.Lock()
	s.links[key] = url
	s.mu.Unlock()

	return nil
}

// Delete appends a tombstone for key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.RLock()
	_, found := s.links[key]
	s.mu.RUnlock()

	if !found {
		return nil
	}

	if err := s.saveRecordToFile(model.LinkRecord{Key: key, Deleted: true}); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.links, key)
	s.mu.Unlock()

	return nil
}

// Ping checks that the backing file is still accessible.
func (s *Storage) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.filePath); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Storage) loadFromFile() error {
	file, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.LinkRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record on line %d: %w", lineNo, err)
		}

		if record.Deleted {
			delete(s.links, record.Key)
			continue
		}
		s.links[record.Key] = record.URL
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}

func (s *Storage) saveRecordToFile(record model.LinkRecord) error {
	s.fileWriteMu.Lock()
	defer s.fileWriteMu.Unlock()

	file, err := os.OpenFile(s.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	data = append(data, '\n')
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}
