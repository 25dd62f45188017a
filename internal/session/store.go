// Package session keeps normalized datasets in memory between the ingest
// call that produced them and the analysis calls that read them. Nothing
// is persisted: a restart clears all sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"adpulse/domain/ads"
	apperrors "adpulse/internal/errors"
)

// SourceKind tells where a session's rows came from.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceMeta   SourceKind = "meta_api"
)

// Session is one ingested dataset plus its provenance.
type Session struct {
	ID        string              `json:"id"`
	Source    SourceKind          `json:"source"`
	Label     string              `json:"label"`
	Rows      []ads.Row           `json:"-"`
	Notes     map[string][]string `json:"-"`
	CreatedAt time.Time           `json:"created_at"`
}

// Store is a concurrency-safe in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Put registers a new session and returns its generated id.
func (s *Store) Put(source SourceKind, label string, rows []ads.Row, notes map[string][]string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Source:    source,
		Label:     label,
		Rows:      rows,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session for id. Callers must not mutate the returned
// rows or notes; use Rows/Notes for defensive copies.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("session not found: " + id)
	}
	return sess, nil
}

// Rows returns a copy of the session's rows.
func (s *Store) Rows(id string) ([]ads.Row, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return append([]ads.Row(nil), sess.Rows...), nil
}

// Notes returns a copy of the session's per-source notes.
func (s *Store) Notes(id string) (map[string][]string, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(sess.Notes))
	for src, lines := range sess.Notes {
		out[src] = append([]string(nil), lines...)
	}
	return out, nil
}

// List returns all sessions, newest first.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
