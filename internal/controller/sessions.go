package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/listing"
)

type sessionKey struct {
	sessionID string
	category  string
}

type sessionEntry struct {
	controller *ListingController
	lastSeen   time.Time
}

// Sessions holds one ListingController per (session, category) and drops
// the ones idle for longer than the TTL.
type Sessions struct {
	mu      sync.Mutex
	entries map[sessionKey]*sessionEntry
	ttl     time.Duration
	session listing.Session
	source  ListingSource
	logger  *zap.Logger
	now     func() time.Time
}

// NewSessions creates an empty registry; controllers idle for ttl expire.
func NewSessions(source ListingSource, session listing.Session, ttl time.Duration, logger *zap.Logger) *Sessions {
	return &Sessions{
		entries: make(map[sessionKey]*sessionEntry),
		ttl:     ttl,
		session: session,
		source:  source,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the controller for sessionID and category, creating it on
// first use.
func (s *Sessions) Get(sessionID, category string) *ListingController {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{sessionID: sessionID, category: category}
	entry, ok := s.entries[key]
	if !ok || s.expired(entry) {
		if ok {
			entry.controller.Close()
		}
		entry = &sessionEntry{
			controller: NewListingController(category, s.session, s.source, s.logger.With(zap.String("session_id", sessionID))),
		}
		s.entries[key] = entry
	}
	entry.lastSeen = s.now()
	return entry.controller
}

// Len is the number of live controllers.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes expired controllers and returns how many it removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if s.expired(entry) {
			entry.controller.Close()
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("Swept idle listing sessions",
					zap.Int("removed", removed),
					zap.Int("active", s.Len()),
				)
			}
		}
	}
}

func (s *Sessions) expired(entry *sessionEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.lastSeen) > s.ttl
}
