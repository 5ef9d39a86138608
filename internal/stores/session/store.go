// Package session holds per-search result accumulation between requests.
// The store is process-lifetime in-memory state: nothing survives a
// restart, and idle sessions are swept out on a schedule so the map cannot
// grow without bound.
package session

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/placescout/placescout/pkg/places"
)

// ErrUnknownSession is returned for identifiers that were never created or
// have already been evicted
var ErrUnknownSession = errors.New("unknown session")

// Options bound the store. The zero value of any field falls back to its
// default; a negative TTL disables expiry entirely.
type Options struct {
	// TTL is the idle lifetime of a session, measured from its last
	// append or read
	TTL time.Duration

	// MaxSessions caps the map size; creating a session at capacity
	// evicts the longest-idle one
	MaxSessions int

	// SweepSchedule is a cron spec for the expiry sweep
	SweepSchedule string
}

const (
	DefaultTTL           = 2 * time.Hour
	DefaultMaxSessions   = 1024
	DefaultSweepSchedule = "@every 5m"
)

// entry pairs a session with its own mutex so append+token-replace is
// atomic per session while distinct sessions never contend
type entry struct {
	mu   sync.Mutex
	sess Session
}

// Store is an in-memory session store
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry

	opts Options
	cron *cron.Cron
}

// NewStore creates a session store and starts its background expiry sweep
func NewStore(opts Options) (*Store, error) {
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSessions == 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.SweepSchedule == "" {
		opts.SweepSchedule = DefaultSweepSchedule
	}

	s := &Store{
		sessions: make(map[uuid.UUID]*entry),
		opts:     opts,
	}

	if opts.TTL > 0 {
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(opts.SweepSchedule, s.Sweep); err != nil {
			return nil, fmt.Errorf("invalid sweep schedule %q: %w", opts.SweepSchedule, err)
		}
		s.cron.Start()
	}

	return s, nil
}

// Create allocates a new session for a query and returns a snapshot of it.
// At capacity the longest-idle session is evicted first, keeping search
// available at the cost of the stalest session.
func (s *Store) Create(query, filename string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.opts.MaxSessions {
		s.evictOldestLocked()
	}

	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New(),
		Query:     query,
		Filename:  filename,
		Places:    []places.Place{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.sessions[sess.ID] = &entry{sess: sess}

	return snapshot(&sess)
}

// Append extends a session's record sequence and replaces its pagination
// token, returning the new total record count. The conceptual 60-record cap
// is the caller's concern; the store never truncates.
func (s *Store) Append(id uuid.UUID, records []places.Place, nextPageToken string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	e.sess.Places = append(e.sess.Places, records...)
	e.sess.NextPageToken = nextPageToken
	e.sess.TokenIssuedAt = now
	e.sess.PageCount++
	e.sess.UpdatedAt = now

	return len(e.sess.Places), nil
}

// Get returns a read-only snapshot of a session. Reading counts as
// activity: it refreshes the idle clock so a session being browsed or
// downloaded is not swept mid-use.
func (s *Store) Get(id uuid.UUID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sess.UpdatedAt = time.Now().UTC()

	return snapshot(&e.sess), nil
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle past the TTL. It runs on the cron schedule
// and is exported so operators (and tests) can force a pass.
func (s *Store) Sweep() {
	if s.opts.TTL <= 0 {
		return
	}

	cutoff := time.Now().UTC().Add(-s.opts.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		if e.sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		log.Printf("[SESSIONS]: swept %d expired session(s), %d remaining", evicted, len(s.sessions))
	}
}

// Close stops the background sweep
func (s *Store) Close() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// evictOldestLocked removes the longest-idle session. Caller holds the
// store lock.
func (s *Store) evictOldestLocked() {
	var oldest uuid.UUID
	var oldestSeen time.Time

	for id, e := range s.sessions {
		if oldestSeen.IsZero() || e.sess.UpdatedAt.Before(oldestSeen) {
			oldest = id
			oldestSeen = e.sess.UpdatedAt
		}
	}

	if !oldestSeen.IsZero() {
		delete(s.sessions, oldest)
		log.Printf("[SESSIONS]: at capacity (%d), evicted idle session %s", s.opts.MaxSessions, oldest)
	}
}

// snapshot copies a session so callers can never reach the stored slice
func snapshot(sess *Session) Session {
	out := *sess
	out.Places = slices.Clone(sess.Places)
	return out
}
