// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/steampulse/internal/metrics"
)

const (
	memoryType = "memory"

	// DefaultMaxEntries bounds a memory store created with maxEntries <= 0.
	DefaultMaxEntries = 10000

	sweepInterval = 5 * time.Minute
)

type entry struct {
	body    []byte
	expires time.Time
}

// Stats is a point-in-time view of a Memory store.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// Memory is a process-local Store. Entries expire after their ttl and at
// most maxEntries are held.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int

	hits, misses, evictions atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a memory store whose entries live for ttl by default. When
// full, an expired entry is dropped first, otherwise the one closest to
// expiry. A background sweep removes expired entries every five minutes
// until Close.
func New(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	m := &Memory{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// Fetch implements Store. An expired entry is removed and reported as a miss.
func (m *Memory) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	now := time.Now()

	m.mu.Lock()
	e, ok := m.entries[key]
	expired := ok && now.After(e.expires)
	if expired {
		delete(m.entries, key)
	}
	m.mu.Unlock()

	if expired {
		m.evicted(1)
	}
	if !ok || expired {
		m.misses.Add(1)
		metrics.RecordCacheLookup(memoryType, false)
		return nil, false, nil
	}
	m.hits.Add(1)
	metrics.RecordCacheLookup(memoryType, true)
	return e.body, true, nil
}

// Put implements Store. Overwriting an existing key never evicts.
func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	now := time.Now()

	m.mu.Lock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictOneLocked(now)
	}
	m.entries[key] = entry{body: value, expires: now.Add(ttl)}
	size := len(m.entries)
	m.mu.Unlock()

	metrics.CacheSize.WithLabelValues(memoryType).Set(float64(size))
	return nil
}

// Name implements Store.
func (m *Memory) Name() string { return memoryType }

// Close stops the sweep. The store stays usable.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// Stats returns current counters.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
		Entries:   n,
	}
}

// evictOneLocked frees one slot. Caller holds m.mu.
func (m *Memory) evictOneLocked(now time.Time) {
	var (
		victim   string
		earliest time.Time
	)
	for key, e := range m.entries {
		if now.After(e.expires) {
			victim = key
			break
		}
		if victim == "" || e.expires.Before(earliest) {
			victim, earliest = key, e.expires
		}
	}
	delete(m.entries, victim)
	m.evicted(1)
}

func (m *Memory) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(time.Now())
		case <-m.stop:
			return
		}
	}
}

// sweep drops every entry expired at now.
func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	var n int64
	for key, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, key)
			n++
		}
	}
	size := len(m.entries)
	m.mu.Unlock()

	m.evicted(n)
	metrics.CacheSize.WithLabelValues(memoryType).Set(float64(size))
}

func (m *Memory) evicted(n int64) {
	if n == 0 {
		return
	}
	m.evictions.Add(n)
	metrics.CacheEvictions.WithLabelValues(memoryType).Add(float64(n))
}

// GenerateKey derives a fixed-length key from a namespace and any
// JSON-encodable params. Map params hash the same regardless of
// insertion order.
func GenerateKey(namespace string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
