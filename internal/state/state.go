// Package state persists reading positions between sessions.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/metcalfc/folio/internal/pager"
)

const (
	appName       = "folio"
	stateFileName = "positions.json"
	hashBytes     = 8192 // First 8KB for content hash
)

// Store maps source content hashes to reading positions, backed by a JSON file.
type Store struct {
	path string
	mu   sync.RWMutex
	data map[string]pager.Position
}

// Dir returns XDG_STATE_HOME/folio or ~/.local/state/folio.
func Dir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// Open loads the store kept in dir, creating dir if needed. A missing or
// unreadable state file starts an empty store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	s := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]pager.Position),
	}
	if err := s.load(); err != nil {
		s.data = make(map[string]pager.Position)
	}
	return s, nil
}

// ComputeHash identifies a source file by the SHA-256 of its first 8KB,
// returned as 32 hex characters.
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	sum := sha256.Sum256(buf[:n])
	return hex.EncodeToString(sum[:16]), nil
}

// Get returns the saved position for hash.
func (s *Store) Get(hash string) (pager.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.data[hash]
	return pos, ok
}

// Set saves pos for hash and writes the file.
func (s *Store) Set(hash string, pos pager.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[hash] = pos
	return s.save()
}

// Clear forgets the position for hash.
func (s *Store) Clear(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[hash]; !ok {
		return nil
	}
	delete(s.data, hash)
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

// save writes through a temporary file so a crash never leaves a truncated
// state file behind.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), stateFileName+".*")
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("state: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	return nil
}
