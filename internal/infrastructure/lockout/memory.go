package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

type entry struct {
	failures    int
	lockedUntil time.Time
}

// MemoryStore is an in-memory LoginLockoutStore suitable for single-instance deployment.
// Entries expire from the cache after a cooldown of inactivity.
type MemoryStore struct {
	mu       sync.Mutex
	cache    *cache.Cache
	max      int
	cooldown time.Duration
}

// NewMemoryStore returns a lockout store with given max attempts and cooldown. maxAttempts 0 = disabled.
func NewMemoryStore(maxAttempts, cooldownSeconds int) *MemoryStore {
	cd := time.Duration(cooldownSeconds) * time.Second
	if cd <= 0 {
		cd = 15 * time.Minute
	}
	return &MemoryStore{
		cache:    cache.New(cd, 2*cd),
		max:      maxAttempts,
		cooldown: cd,
	}
}

// get returns a copy of the entry for login. Callers hold s.mu.
func (s *MemoryStore) get(login string) (entry, bool) {
	if v, ok := s.cache.Get(login); ok {
		return v.(entry), true
	}
	return entry{}, false
}

func (s *MemoryStore) IsLocked(ctx context.Context, login string) (locked bool, retryAfterSeconds int) {
	if s.max <= 0 {
		return false, 0
	}
	s.mu.Lock()
	e, ok := s.get(login)
	s.mu.Unlock()
	if !ok {
		return false, 0
	}
	if wait := time.Until(e.lockedUntil); wait > 0 {
		return true, max(1, int(wait.Seconds()))
	}
	return false, 0
}

func (s *MemoryStore) RecordFailure(ctx context.Context, login string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	e, ok := s.get(login)
	if !ok || (!e.lockedUntil.IsZero() && now.After(e.lockedUntil)) {
		e = entry{}
	}
	e.failures++
	if e.failures >= s.max {
		e.lockedUntil = now.Add(s.cooldown)
	}
	s.cache.Set(login, e, s.cooldown)
}

func (s *MemoryStore) RecordSuccess(ctx context.Context, login string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(login)
}

var _ ports.LoginLockoutStore = (*MemoryStore)(nil)
