package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the memory backend evicts expired entries.
const DefaultSweepInterval = 5 * time.Minute

// memoryEntry is a stored value with its absolute expiry instant.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// MemoryBackend is the in-process fallback cache used when no Redis URL is
// configured. Expiry is enforced lazily on Get and additionally by a periodic
// sweep owned by the backend; the sweep only bounds memory, it is not needed
// for correctness.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	sweepInterval time.Duration
	stopSweep     chan struct{}
	sweepDone     chan struct{}
	startOnce     sync.Once
	stopOnce      sync.Once
	started       bool

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewMemoryBackend creates an in-memory backend. Call Start to run the
// background sweep; a backend that is never started still expires entries
// lazily on every Get.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries:       make(map[string]memoryEntry),
		sweepInterval: DefaultSweepInterval,
		stopSweep:     make(chan struct{}),
		sweepDone:     make(chan struct{}),
		now:           time.Now,
	}
}

// Start launches the periodic sweep goroutine. Safe to call more than once.
func (m *MemoryBackend) Start() {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.started = true
		m.mu.Unlock()
		go m.sweepLoop()
	})
}

// Stop terminates the sweep goroutine and waits for it to exit. A backend
// that was never started stops without blocking.
func (m *MemoryBackend) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopSweep)
	})

	m.mu.RLock()
	started := m.started
	m.mu.RUnlock()

	if started {
		<-m.sweepDone
	}
}

func (m *MemoryBackend) sweepLoop() {
	defer close(m.sweepDone)

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopSweep:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep evicts every entry past its expiry.
func (m *MemoryBackend) sweep() {
	now := m.now()

	m.mu.Lock()
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
}

// Get returns the stored bytes, checking expiry lazily so stale entries are
// never observable between sweeps.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return entry.data, nil
}

// Set stores data under key, overwriting any previous entry.
func (m *MemoryBackend) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		data:      data,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()

	return nil
}

// Delete removes the entry for key.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// IsConnected always reports true: the in-memory backend has no remote
// dependency to lose.
func (m *MemoryBackend) IsConnected(_ context.Context) bool {
	return true
}

// Close stops the sweep goroutine.
func (m *MemoryBackend) Close() error {
	m.Stop()
	return nil
}

// Len returns the number of stored entries, including not-yet-swept expired
// ones. Diagnostics only.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
