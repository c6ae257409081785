// Package session holds the in-memory review workflow: a search result
// becomes a session, the caller steps through it deciding keep or skip,
// and kept artworks feed the download step. Nothing survives a restart.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psylabs/art-finder/pkg/models"
)

type Decision string

const (
	DecisionKeep Decision = "keep"
	DecisionSkip Decision = "skip"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrExhausted = errors.New("no artworks left to review")
)

type session struct {
	id        string
	source    string
	createdAt time.Time
	artworks  []models.Artwork
	cursor    int
	decisions map[string]Decision // artwork id -> decision
}

// Summary is the caller-facing view of a session's progress.
type Summary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Total     int       `json:"total"`
	Reviewed  int       `json:"reviewed"`
	Kept      int       `json:"kept"`
	Skipped   int       `json:"skipped"`
	Remaining int       `json:"remaining"`
}

// Store keeps review sessions in memory, keyed by UUID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// Create opens a session over the given artworks and returns its summary.
func (s *Store) Create(source string, artworks []models.Artwork) Summary {
	sess := &session{
		id:        uuid.NewString(),
		source:    source,
		createdAt: time.Now().UTC(),
		artworks:  artworks,
		decisions: make(map[string]Decision),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return summarize(sess)
}

// Summary reports a session's progress.
func (s *Store) Summary(id string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return summarize(sess), nil
}

// Current returns the artwork under review. ErrExhausted means the session
// has been reviewed to the end.
func (s *Store) Current(id string) (models.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Artwork{}, ErrNotFound
	}
	if sess.cursor >= len(sess.artworks) {
		return models.Artwork{}, ErrExhausted
	}
	return sess.artworks[sess.cursor], nil
}

// Decide records a keep/skip decision for the current artwork and advances
// the cursor. It returns the next artwork, or done=true when the session is
// exhausted.
func (s *Store) Decide(id string, decision Decision) (next models.Artwork, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Artwork{}, false, ErrNotFound
	}
	if sess.cursor >= len(sess.artworks) {
		return models.Artwork{}, true, ErrExhausted
	}

	sess.decisions[sess.artworks[sess.cursor].ID] = decision
	sess.cursor++

	if sess.cursor >= len(sess.artworks) {
		return models.Artwork{}, true, nil
	}
	return sess.artworks[sess.cursor], false, nil
}

// Kept returns the artworks marked keep, in review order.
func (s *Store) Kept(id string) ([]models.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	kept := make([]models.Artwork, 0, len(sess.decisions))
	for _, art := range sess.artworks {
		if sess.decisions[art.ID] == DecisionKeep {
			kept = append(kept, art)
		}
	}
	return kept, nil
}

// Delete removes a session. Deleting an unknown session is an error so the
// caller can distinguish a typo from success.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func summarize(sess *session) Summary {
	kept := 0
	for _, d := range sess.decisions {
		if d == DecisionKeep {
			kept++
		}
	}
	reviewed := len(sess.decisions)
	return Summary{
		ID:        sess.id,
		Source:    sess.source,
		CreatedAt: sess.createdAt,
		Total:     len(sess.artworks),
		Reviewed:  reviewed,
		Kept:      kept,
		Skipped:   reviewed - kept,
		Remaining: len(sess.artworks) - sess.cursor,
	}
}
