// Package ratelimit bounds request throughput per client with a sliding
// window of timestamps. Counters live in process memory only; horizontally
// scaled deployments would need to externalize them to a shared store.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultMaxEntries = 10000

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
}

type entry struct {
	timestamps []time.Time
	lastSeen   time.Time
}

// Limiter keeps one timestamp list per client key. The store is bounded:
// entries idle longer than the window are dropped, and above maxEntries the
// longest-idle entries are evicted first.
type Limiter struct {
	max        int
	window     time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type Option func(*Limiter)

// WithClock overrides the time source, used by tests to step the window.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func WithMaxEntries(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

func New(max int, window time.Duration, opts ...Option) *Limiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}

	limiter := &Limiter{
		max:        max,
		window:     window,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
		entries:    map[string]*entry{},
	}
	for _, opt := range opts {
		opt(limiter)
	}

	return limiter
}

// Check records a request for key and reports whether it is within the
// window's budget. It never fails; callers translate a denial into 429.
func (l *Limiter) Check(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, exists := l.entries[key]
	if !exists {
		l.evictLocked(now)
		e = &entry{}
		l.entries[key] = e
	}

	cutoff := now.Add(-l.window)
	kept := e.timestamps[:0]
	for _, ts := range e.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	e.timestamps = kept
	e.lastSeen = now

	remaining := l.max - len(kept)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   len(kept) <= l.max,
		Limit:     l.max,
		Remaining: remaining,
	}
}

// evictLocked keeps the store bounded. Entries idle for longer than the
// window carry no live state and go first; if the cap is still exceeded the
// longest-idle entry is sacrificed.
func (l *Limiter) evictLocked(now time.Time) {
	if len(l.entries) < l.maxEntries {
		return
	}

	cutoff := now.Add(-l.window)
	for key, e := range l.entries {
		if !e.lastSeen.After(cutoff) {
			delete(l.entries, key)
		}
	}

	for len(l.entries) >= l.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for key, e := range l.entries {
			if oldestKey == "" || e.lastSeen.Before(oldest) {
				oldestKey = key
				oldest = e.lastSeen
			}
		}
		delete(l.entries, oldestKey)
	}
}

// ClientKey derives the limiter key from the first X-Forwarded-For entry.
// Without a trusted proxy normalizing that header the key is spoofable, and
// absent the header every client shares the "unknown" bucket.
func ClientKey(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded == "" {
		return "unknown"
	}

	if i := strings.IndexByte(forwarded, ','); i >= 0 {
		forwarded = forwarded[:i]
	}

	key := strings.TrimSpace(forwarded)
	if key == "" {
		return "unknown"
	}

	return key
}
