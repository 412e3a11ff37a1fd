// Package store persists the note collection, the active note id and the
// theme into a key/value backend, under the same keys the browser version
// of the app used in localStorage.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/faaadelmr/noted/internal/notes"
)

const (
	KeyNotes  = "sipaling-noted-notes"
	KeyActive = "sipaling-noted-activeTabId"
	KeyTheme  = "sipaling-noted-theme"
)

// recentWrites is how many of our own write fingerprints are remembered
// when telling self-writes from external ones.
const recentWrites = 16

// State is everything the app persists.
type State struct {
	Notes notes.Collection
	Theme string // empty when never chosen
}

// Store is the explicit load/save object injected into the UI and CLI.
type Store struct {
	kv  KV
	log *slog.Logger

	mu     sync.Mutex
	last   snapshot
	recent []uint64
}

type snapshot struct {
	notes, active, theme string
}

func (s snapshot) sum() uint64 {
	return xxhash.Sum64String(s.notes + "\x00" + s.active + "\x00" + s.theme)
}

func New(kv KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log}
}

func (s *Store) Close() error { return s.kv.Close() }

func (s *Store) read() (snapshot, bool, error) {
	var snap snapshot
	var hasNotes bool
	var err error
	if snap.notes, hasNotes, err = s.kv.Get(KeyNotes); err != nil {
		return snap, false, err
	}
	if snap.active, _, err = s.kv.Get(KeyActive); err != nil {
		return snap, false, err
	}
	if snap.theme, _, err = s.kv.Get(KeyTheme); err != nil {
		return snap, false, err
	}
	return snap, hasNotes, nil
}

// Load reads the persisted state. Missing data yields the welcome note;
// data that fails to parse is logged and also replaced by the welcome
// note. Only backend errors are returned.
func (s *Store) Load() (State, error) {
	snap, hasNotes, err := s.read()
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}

	s.mu.Lock()
	s.last = snap
	s.remember(snap.sum())
	s.mu.Unlock()

	st := State{Theme: snap.theme, Notes: notes.Welcome()}
	if !hasNotes {
		return st, nil
	}
	c, err := notes.DecodeCollection([]byte(snap.notes), snap.active, notes.UUIDSource{})
	if err != nil {
		s.log.Warn("stored notes unreadable, using defaults", "err", err)
		return st, nil
	}
	st.Notes = c
	return st, nil
}

// Save writes the whole state.
func (s *Store) Save(st State) error {
	if err := s.SaveCollection(st.Notes); err != nil {
		return err
	}
	if st.Theme != "" {
		return s.SaveTheme(st.Theme)
	}
	return nil
}

// SaveCollection writes the notes and the active note id. It is what the
// notes manager's subscription calls after each mutation.
func (s *Store) SaveCollection(c notes.Collection) error {
	payload, err := notes.EncodeNotes(c.Notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.last
	next.notes = string(payload)
	if c.ActiveID != "" {
		next.active = c.ActiveID
	}
	// remember before writing so the watcher never sees an unknown self-write
	s.remember(next.sum())

	if err := s.kv.Set(KeyNotes, next.notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	if c.ActiveID != "" {
		if err := s.kv.Set(KeyActive, c.ActiveID); err != nil {
			return fmt.Errorf("save active note: %w", err)
		}
	}
	s.last = next
	s.log.Debug("state saved", "notes", len(c.Notes), "bytes", len(payload))
	return nil
}

// SaveTheme writes the theme id.
func (s *Store) SaveTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.last
	next.theme = id
	s.remember(next.sum())
	if err := s.kv.Set(KeyTheme, id); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	s.last = next
	return nil
}

// Changed reports whether the backend holds something this Store did not
// write itself, i.e. another process edited it.
func (s *Store) Changed() (bool, error) {
	snap, _, err := s.read()
	if err != nil {
		return false, err
	}
	sum := snap.sum()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recent {
		if r == sum {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) remember(sum uint64) {
	s.recent = append(s.recent, sum)
	if len(s.recent) > recentWrites {
		s.recent = s.recent[len(s.recent)-recentWrites:]
	}
}
