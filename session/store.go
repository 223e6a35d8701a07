package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"comment-insights-service/metrics"
	"comment-insights-service/model"
)

// Session holds the per-browser working state: the comment table from the
// most recent fetch, the videos it came from, and the Q&A history.
type Session struct {
	ID        string
	Table     model.CommentTable
	Videos    []model.VideoSummary
	History   []model.ConversationTurn
	FetchedAt time.Time
	LastSeen  time.Time
}

// Store is an in-memory session registry keyed by opaque session IDs.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, minting a new one when id is
// empty or unknown. The returned ID is what the caller should hand back
// to the browser.
func (s *Store) GetOrCreate(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.LastSeen = time.Now()
			return id
		}
	}

	sess := &Session{ID: uuid.NewString(), LastSeen: time.Now()}
	s.sessions[sess.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	log.Printf("[DEBUG] Created session %s (%d active)", sess.ID, len(s.sessions))
	return sess.ID
}

// SetTable replaces the session's comment table after a fetch. Each fetch
// overwrites the previous table wholesale.
func (s *Store) SetTable(id string, table model.CommentTable, videos []model.VideoSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.Table = table
	sess.Videos = videos
	sess.FetchedAt = time.Now()
	sess.LastSeen = time.Now()
}

// Table returns the session's current comment table. Tables are replaced
// wholesale and never edited in place, so sharing the slice is safe.
func (s *Store) Table(id string) (model.CommentTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return sess.Table, true
}

// Videos returns the summaries of the videos behind the current table.
func (s *Store) Videos(id string) []model.VideoSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.Videos
	}
	return nil
}

// AppendTurn records one question/answer pair in the session history.
func (s *Store) AppendTurn(id string, turn model.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.History = append(sess.History, turn)
		sess.LastSeen = time.Now()
	}
}

// History returns a copy of the session's Q&A history, oldest first.
func (s *Store) History(id string) []model.ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || len(sess.History) == 0 {
		return nil
	}
	out := make([]model.ConversationTurn, len(sess.History))
	copy(out, sess.History)
	return out
}

// ClearHistory drops the session's Q&A history but keeps the table.
func (s *Store) ClearHistory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.History = nil
		sess.LastSeen = time.Now()
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions idle for longer than maxIdle and returns how
// many were dropped.
func (s *Store) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		log.Printf("[INFO] Evicted %d idle session(s), %d remaining", evicted, len(s.sessions))
	}
	return evicted
}
