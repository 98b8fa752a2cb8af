package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ecowatch/notice-api/internal/model"
)

// ErrNotFound is returned by every mutation and lookup whose id has no
// record. All four mutations report it the same way; none silently
// no-ops on an unknown id.
var ErrNotFound = errors.New("notification not found")

// Store holds the canonical ordered collection of notices, keyed by id.
// Records are loaded once and never created or deleted afterwards; the
// only writes are the four user-state mutations, each replacing exactly
// one record. A RWMutex serializes writers since the HTTP layer serves
// requests concurrently; readers get deep copies, never aliases.
type Store struct {
	mu         sync.RWMutex
	records    []model.Notification
	index      map[string]int
	lastUpdate string
}

// New builds a store from the loaded feed. Collection order is the feed
// order and is preserved by every read. Duplicate ids are a load error.
func New(records []model.Notification, lastUpdate string) (*Store, error) {
	index := make(map[string]int, len(records))
	owned := make([]model.Notification, len(records))
	for i, n := range records {
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate notification id %q", n.ID)
		}
		index[n.ID] = i
		owned[i] = n.Clone()
	}
	return &Store{
		records:    owned,
		index:      index,
		lastUpdate: lastUpdate,
	}, nil
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastUpdate returns the feed's lastUpdate timestamp.
func (s *Store) LastUpdate() string {
	return s.lastUpdate
}

// Snapshot returns a deep copy of the collection in canonical order.
// Queries operate on snapshots so no read interleaves with a partially
// applied mutation.
func (s *Store) Snapshot() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Notification, len(s.records))
	for i := range s.records {
		out[i] = s.records[i].Clone()
	}
	return out
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.Notification{}, ErrNotFound
	}
	return s.records[i].Clone(), nil
}

// ToggleFavorite flips isFavorited on the record with the given id and
// returns the updated record. All other fields are untouched.
func (s *Store) ToggleFavorite(id string) (model.Notification, error) {
	return s.update(id, func(n *model.Notification) {
		n.IsFavorited = !n.IsFavorited
	})
}

// SetNote replaces the record's note with text verbatim. The empty
// string is stored as-is and means "no note"; there is no separate
// cleared state.
func (s *Store) SetNote(id, text string) (model.Notification, error) {
	return s.update(id, func(n *model.Notification) {
		n.Notes = text
	})
}

// AddTag appends tag to the record's tag set. The tag is trimmed of
// surrounding whitespace first; adds of an already-present tag or of a
// tag that is empty after trimming leave the record unchanged. Matching
// is case-sensitive and exact.
func (s *Store) AddTag(id, tag string) (model.Notification, error) {
	tag = strings.TrimSpace(tag)
	return s.update(id, func(n *model.Notification) {
		if tag == "" || n.HasTag(tag) {
			return
		}
		n.Tags = append(n.Tags, tag)
	})
}

// RemoveTag removes tag from the record's tag set if present, keeping
// the order of the remaining tags. Removing an absent tag leaves the
// record unchanged.
func (s *Store) RemoveTag(id, tag string) (model.Notification, error) {
	return s.update(id, func(n *model.Notification) {
		for i, t := range n.Tags {
			if t == tag {
				n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
				return
			}
		}
	})
}

// FavoriteCount returns how many records are currently favorited.
func (s *Store) FavoriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for i := range s.records {
		if s.records[i].IsFavorited {
			count++
		}
	}
	return count
}

// update applies fn to a private copy of the target record and swaps it
// into the collection, so at most one record changes per operation.
func (s *Store) update(id string, fn func(*model.Notification)) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return model.Notification{}, ErrNotFound
	}
	updated := s.records[i].Clone()
	fn(&updated)
	s.records[i] = updated
	return updated.Clone(), nil
}
