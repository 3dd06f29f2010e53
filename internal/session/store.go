// Package session keeps per-browser dashboard state in memory. Sessions
// live for the configured TTL and are never written to disk; restarting
// the server drops them all.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saqif1/AI-Technical-Analysis/internal/models"
)

// CookieName is the session cookie set on dashboard responses.
const CookieName = "ta_session"

// entry wraps a session with expiry and insertion order tracking.
type entry struct {
	session   *models.Session
	expiry    time.Time
	insertIdx int64
}

// Store holds sessions keyed by ID. Thread-safe with sync.RWMutex.
// Evicts the oldest session when at capacity.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// NewStore creates a session store with the given TTL and max entry count.
func NewStore(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Create allocates a new empty session and returns it.
func (s *Store) Create() *models.Session {
	now := time.Now()
	sess := &models.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.put(sess)
	return sess
}

// Get returns a copy of the session if found and not expired. Callers get
// a clone so reads never race a concurrent Save.
func (s *Store) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		s.mu.Lock()
		if e2, ok2 := s.items[id]; ok2 && time.Now().After(e2.expiry) {
			delete(s.items, id)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.session.Clone(), true
}

// Save stores the session, refreshing its expiry.
func (s *Store) Save(sess *models.Session) {
	s.put(sess.Clone())
}

// Len returns the number of live entries, expired included until lazily
// removed.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) put(sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{
		session:   sess,
		expiry:    time.Now().Add(s.ttl),
		insertIdx: s.nextIdx,
	}
	s.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := s.items[sess.ID]; exists {
		s.items[sess.ID] = e
		return
	}

	// Evict oldest if at capacity
	if len(s.items) >= s.maxEntries {
		s.evictOldest()
	}

	s.items[sess.ID] = e
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (s *Store) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range s.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(s.items, oldestKey)
	}
}
