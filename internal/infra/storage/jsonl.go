package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

const maxJSONLLineSize = 1024 * 1024

// JsonlStorage appends one JSON object per dispatch to a single file
type JsonlStorage struct {
	path string
	mu   sync.RWMutex
}

var _ DispatchJournal = (*JsonlStorage)(nil)

// recordLine is the on-disk shape of one dispatch
type recordLine struct {
	Version int                   `json:"v"`
	Record  domain.DispatchRecord `json:"record"`
}

const jsonlFormatVersion = 1

// NewJsonlStorage creates the journal file's directory and checks that it is writable
func NewJsonlStorage(config JSONLConfig) (*JsonlStorage, error) {
	path := config.Path
	if path == "" {
		return nil, fmt.Errorf("jsonl storage path is empty")
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal file not writable: %w", err)
	}
	_ = f.Close()

	return &JsonlStorage{path: path}, nil
}

// Path returns the journal file location
func (s *JsonlStorage) Path() string {
	return s.path
}

// Record appends a record line
func (s *JsonlStorage) Record(ctx context.Context, record domain.DispatchRecord) error {
	data, err := json.Marshal(recordLine{Version: jsonlFormatVersion, Record: record})
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append dispatch record: %w", err)
	}
	return nil
}

// List returns records newest first. Lines that fail to decode are skipped.
func (s *JsonlStorage) List(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []domain.DispatchRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rl recordLine
		if err := json.Unmarshal(line, &rl); err != nil {
			continue
		}
		records = append(records, rl.Record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	start, end := page(len(records), limit, offset)
	return records[start:end], nil
}

// Close is a no-op; the file is opened per operation
func (s *JsonlStorage) Close() error {
	return nil
}

// Health checks that the journal file can be opened for appending
func (s *JsonlStorage) Health(ctx context.Context) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("journal not writable: %w", err)
	}
	return f.Close()
}
