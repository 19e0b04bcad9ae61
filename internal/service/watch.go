package service

import (
	"sync"
	"time"

	"github.com/yonas-t/earnbot/internal/domain"
)

type watchSession struct {
	taskID    int64
	startedAt time.Time
}

// WatchStore tracks one in-flight video watch per user. A new Start
// overwrites any prior session; sessions left behind are evicted by
// Cleanup so the map stays bounded across the process lifetime.
type WatchStore struct {
	mu       sync.Mutex
	sessions map[int64]watchSession
	floor    time.Duration
	ttl      time.Duration
	now      func() time.Time
}

func NewWatchStore(floor, ttl time.Duration) *WatchStore {
	return &WatchStore{
		sessions: make(map[int64]watchSession),
		floor:    floor,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start records the watch start for userID on taskID.
func (s *WatchStore) Start(userID, taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = watchSession{taskID: taskID, startedAt: s.now()}
}

// Check validates that userID has a session for taskID and that the watch
// floor has elapsed. On a too-early finish it returns ErrWatchTooShort with
// the remaining wait; the session is kept so the user can retry.
func (s *WatchStore) Check(userID, taskID int64) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.taskID != taskID {
		return 0, domain.ErrWatchNotStarted
	}

	elapsed := s.now().Sub(sess.startedAt)
	if elapsed < s.floor {
		return s.floor - elapsed, domain.ErrWatchTooShort
	}
	return 0, nil
}

// Clear drops the session for userID, if any.
func (s *WatchStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Cleanup evicts sessions older than the TTL and returns how many were dropped.
func (s *WatchStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for userID, sess := range s.sessions {
		if sess.startedAt.Before(cutoff) {
			delete(s.sessions, userID)
			n++
		}
	}
	return n
}
