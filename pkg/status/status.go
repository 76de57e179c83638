// Package status tracks a single free-text status string per subject, persisted as JSON.
package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Mode selects how subjects are keyed and who may write them.
type Mode string

const (
	// ModeFixed tracks a fixed set of named subjects, each writable by exactly one owner.
	// Each subject is stored in its own file.
	ModeFixed Mode = "fixed"
	// ModeOpen keys statuses by user ID; every user may set their own.
	// All statuses are stored in a single file.
	ModeOpen Mode = "open"
)

const openFileName = "statuses.json"

var (
	ErrDenied         = errors.New("requester is not allowed to set this status")
	ErrUnknownSubject = errors.New("unknown subject")
)

type document struct {
	Status string `json:"status"`
}

type Store struct {
	dir    string
	mode   Mode
	owners map[string]string
	logger *zap.Logger

	mu       sync.RWMutex
	statuses map[string]string
}

// Open creates a store in dir and seeds it from disk. owners maps each subject to its
// authorized requester and is ignored in ModeOpen. Missing or malformed files are
// treated as absent statuses.
func Open(dir string, mode Mode, owners map[string]string, logger *zap.Logger) (*Store, error) {
	switch mode {
	case ModeFixed, ModeOpen:
	default:
		return nil, fmt.Errorf("invalid status mode %q", mode)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating status dir: %w", err)
	}

	s := &Store{
		dir:      dir,
		mode:     mode,
		owners:   owners,
		logger:   logger,
		statuses: make(map[string]string),
	}
	s.load()
	return s, nil
}

func (s *Store) Mode() Mode {
	return s.mode
}

// Subjects lists the configured subjects in ModeFixed.
func (s *Store) Subjects() []string {
	subjects := make([]string, 0, len(s.owners))
	for subject := range s.owners {
		subjects = append(subjects, subject)
	}
	return subjects
}

func (s *Store) load() {
	switch s.mode {
	case ModeFixed:
		for subject := range s.owners {
			var doc document
			if !s.readJSON(s.subjectPath(subject), &doc) {
				continue
			}
			s.statuses[subject] = doc.Status
		}
	case ModeOpen:
		var all map[string]string
		if !s.readJSON(filepath.Join(s.dir, openFileName), &all) {
			return
		}
		for k, v := range all {
			s.statuses[k] = v
		}
	}
}

func (s *Store) readJSON(path string, v any) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read status file", zap.String("path", path), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.logger.Warn("malformed status file", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// Get returns the cached status of subject.
func (s *Store) Get(subject string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.statuses[subject]
	return text, ok
}

// Set replaces the status of subject on behalf of requester and persists it.
// The stored value is unchanged when the write is denied or fails.
func (s *Store) Set(subject, text, requester string) error {
	switch s.mode {
	case ModeFixed:
		owner, ok := s.owners[subject]
		if !ok {
			return ErrUnknownSubject
		}
		if owner != requester {
			return ErrDenied
		}
	case ModeOpen:
		if subject != requester {
			return ErrDenied
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case ModeFixed:
		if err := writeJSON(s.subjectPath(subject), document{Status: text}); err != nil {
			return err
		}
	case ModeOpen:
		all := make(map[string]string, len(s.statuses)+1)
		for k, v := range s.statuses {
			all[k] = v
		}
		all[subject] = text
		if err := writeJSON(filepath.Join(s.dir, openFileName), all); err != nil {
			return err
		}
	}
	s.statuses[subject] = text
	return nil
}

func (s *Store) subjectPath(subject string) string {
	return filepath.Join(s.dir, subject+".json")
}

// writeJSON replaces path with the encoding of v.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".status-")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	_, err = f.Write(b)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("writing status: %w", err)
	}
	err = f.Close()
	if err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	err = os.Rename(f.Name(), path)
	if err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("replacing status file: %w", err)
	}
	return nil
}
