package kv

import (
	"context"
	"strings"
	"sync"
	"time"
)

type sessionEntry struct {
	store    *MemoryStore
	lastSeen time.Time
}

// Sessions hands out one volatile namespace per client session. Idle sessions
// are evicted by the sweeper started with Start.
type Sessions struct {
	mu         sync.Mutex
	entries    map[string]*sessionEntry
	quotaBytes int64
	idleTTL    time.Duration
	now        func() time.Time
}

func NewSessions(quotaBytes int64, idleTTL time.Duration) *Sessions {
	return &Sessions{
		entries:    make(map[string]*sessionEntry),
		quotaBytes: quotaBytes,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

// Store returns the namespace for sessionID, creating it on first use.
func (sessions *Sessions) Store(sessionID string) *MemoryStore {
	key := strings.TrimSpace(sessionID)

	sessions.mu.Lock()
	defer sessions.mu.Unlock()

	entry, ok := sessions.entries[key]
	if !ok {
		entry = &sessionEntry{store: NewMemoryStore(sessions.quotaBytes)}
		sessions.entries[key] = entry
	}
	entry.lastSeen = sessions.now()
	return entry.store
}

func (sessions *Sessions) Drop(sessionID string) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	delete(sessions.entries, strings.TrimSpace(sessionID))
}

func (sessions *Sessions) Len() int {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	return len(sessions.entries)
}

func (sessions *Sessions) Start(ctx context.Context) {
	if sessions.idleTTL <= 0 {
		return
	}

	interval := sessions.idleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.evictIdle()
			}
		}
	}()
}

func (sessions *Sessions) evictIdle() int {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()

	threshold := sessions.now().Add(-sessions.idleTTL)
	evicted := 0
	for id, entry := range sessions.entries {
		if entry.lastSeen.Before(threshold) {
			delete(sessions.entries, id)
			evicted++
		}
	}
	return evicted
}
