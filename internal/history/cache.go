// Package history remembers the last run of every interpreter between
// invocations so the CLI can show it next to the interpreter listing.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"

	"github.com/alexisbeaulieu97/snipexec/internal/model"
)

// Store persists run history between sessions. Writes re-read the file under
// an exclusive lock and change only the affected entries, so processes
// sharing a work directory do not drop each other's runs.
type Store struct {
	path    string
	lock    *flock.Flock
	mu      sync.RWMutex
	version string
	entries map[string]Entry
}

// PathFor returns the history file location for a work directory.
func PathFor(workDir string) string {
	return filepath.Join(workDir, FileName)
}

// NewStore creates a Store and loads it from disk when the file exists.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    path,
		lock:    flock.New(path + ".lock"),
		version: fileVersion,
		entries: make(map[string]Entry),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	if err := s.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return s, nil
}

// Load reads the history from disk.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readFile()
	if err != nil {
		return err
	}
	s.version = file.Version
	s.entries = file.Entries
	return nil
}

func (s *Store) readFile() (File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return File{}, err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse history: %w", err)
	}
	if file.Entries == nil {
		file.Entries = make(map[string]Entry)
	}
	return file, nil
}

// update applies change to the entries currently on disk and writes them
// back, holding the file lock for the whole read-modify-write.
func (s *Store) update(change func(entries map[string]Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock history: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	file, err := s.readFile()
	switch {
	case errors.Is(err, os.ErrNotExist):
		file = File{Version: fileVersion, Entries: make(map[string]Entry)}
	case err != nil:
		return err
	}

	change(file.Entries)
	if err := s.writeFile(file); err != nil {
		return err
	}

	s.version = file.Version
	s.entries = file.Entries
	return nil
}

func (s *Store) writeFile(file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "history-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Get retrieves the last entry for an interpreter.
func (s *Store) Get(interpreter string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[interpreter]
	return entry, ok
}

// Record stores the result under the interpreter that was asked to run and
// writes the file.
func (s *Store) Record(result model.RunResult) error {
	entry := EntryFromResult(result)
	return s.update(func(entries map[string]Entry) {
		entries[entry.Interpreter] = entry
	})
}

// Entries returns all entries ordered by interpreter name.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Interpreter < entries[j].Interpreter
	})
	return entries
}

// Invalidate removes the entry for an interpreter. It reports whether an
// entry existed.
func (s *Store) Invalidate(interpreter string) (bool, error) {
	found := false
	err := s.update(func(entries map[string]Entry) {
		_, found = entries[interpreter]
		delete(entries, interpreter)
	})
	return found, err
}

// InvalidateAll removes every entry.
func (s *Store) InvalidateAll() error {
	return s.update(func(entries map[string]Entry) {
		for name := range entries {
			delete(entries, name)
		}
	})
}
