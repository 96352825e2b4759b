// Package callflow drives the scripted four-step dialogue for inbound
// emergency calls and keeps the per-call session state.
package callflow

import (
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"log/slog"
	"sync"
	"time"
)

// Store keeps active call sessions keyed by the telephony provider's call SID.
//
// The mutex keeps the map and session snapshots consistent, but duplicate
// webhook deliveries for the same call SID can still consume two script steps;
// the telephony protocol offers no delivery nonce to deduplicate on.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*models.CallSession
	ttl      time.Duration
	done     chan struct{}
	logger   *slog.Logger
}

// NewStore creates a session store whose sweeper reclaims sessions idle longer
// than ttl. Stalled calls would otherwise leak their entries until restart.
// Call Close to stop the sweeper.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*models.CallSession),
		ttl:      ttl,
		done:     make(chan struct{}),
		logger:   logger.With("source", "callflow.Store"),
	}
	go s.sweepLoop()
	return s
}

// GetOrCreate returns the session for callSID, lazily creating a fresh one at
// the first script step. An unknown SID on a continuation is indistinguishable
// from a new call and simply starts over.
func (s *Store) GetOrCreate(callSID string) *models.CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[callSID]; ok {
		return sess
	}
	sess := &models.CallSession{
		CallSID:      callSID,
		Step:         models.StepLocation,
		LastActivity: time.Now(),
	}
	s.sessions[callSID] = sess
	return sess
}

// Get returns the session for callSID if one exists.
func (s *Store) Get(callSID string) (*models.CallSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[callSID]
	return sess, ok
}

// Remove deletes the session for callSID.
func (s *Store) Remove(callSID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callSID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the background sweeper.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep removes sessions that have been idle longer than the ttl.
func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for callSID, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.ttl {
			s.logger.Info("reclaiming stalled call session",
				slog.String("callSID", callSID), slog.Int("step", int(sess.Step)))
			delete(s.sessions, callSID)
		}
	}
}
