package bp

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterStore keeps one token bucket per client key (the remote address
// on the local server). Idle clients can be dropped with Prune.
type RateLimiterStore struct {
	limiters     map[string]*clientLimiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	now          func() time.Time
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*clientLimiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
		now:          time.Now,
	}
}

func (s *RateLimiterStore) GetLimiter(clientKey string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[clientKey]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(s.defaultRate, s.defaultBurst)}
		s.limiters[clientKey] = entry
	}
	entry.lastSeen = s.now()
	return entry.limiter
}

func (s *RateLimiterStore) Allow(clientKey string) bool {
	return s.GetLimiter(clientKey).Allow()
}

// Prune drops limiters not used within idle and returns how many were removed.
func (s *RateLimiterStore) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for key, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
