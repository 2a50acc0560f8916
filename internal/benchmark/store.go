package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store defines the interface for storing sweeps.
type Store interface {
	Save(sweep Sweep) (int64, error)
	Load(id int64) (*Sweep, error)
	LoadLatest() (*Sweep, error)
	LoadAll() ([]Sweep, error)
	Close() error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Save appends sweep to the history file and returns its assigned ID.
func (s *FileStore) Save(sweep Sweep) (int64, error) {
	sweeps, err := s.LoadAll()
	if err != nil {
		return 0, err
	}

	var maxID int64
	for _, existing := range sweeps {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	sweep.ID = maxID + 1
	sweeps = append(sweeps, sweep)

	data, err := json.MarshalIndent(sweeps, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal sweeps: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return sweep.ID, nil
}

func (s *FileStore) LoadAll() ([]Sweep, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Sweep{}, nil
		}
		return nil, err
	}

	var sweeps []Sweep
	if len(data) == 0 {
		return []Sweep{}, nil
	}

	if err := json.Unmarshal(data, &sweeps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sweeps: %w", err)
	}

	sort.SliceStable(sweeps, func(i, j int) bool {
		return sweeps[i].StartedAt.Before(sweeps[j].StartedAt)
	})

	return sweeps, nil
}

func (s *FileStore) Load(id int64) (*Sweep, error) {
	sweeps, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range sweeps {
		if sweeps[i].ID == id {
			return &sweeps[i], nil
		}
	}
	return nil, fmt.Errorf("sweep %d not found", id)
}

func (s *FileStore) LoadLatest() (*Sweep, error) {
	sweeps, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(sweeps) == 0 {
		return nil, nil
	}
	return &sweeps[len(sweeps)-1], nil
}

func (s *FileStore) Close() error {
	return nil
}
