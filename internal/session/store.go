// Package session keeps per-browser state: who is signed in, the admin token,
// read-once messages and the checkout state machine position.
package session

import (
	"context"
	"sync"
	"time"
)

// Session keys.
const (
	KeyUserID              = "userId"
	KeyAdminToken          = "adminToken"
	KeyAdminID             = "adminId"
	KeyAdminUsername       = "adminUsername"
	KeyOrderSuccessMessage = "orderSuccessMessage"
	KeyCheckoutState       = "checkoutState"
	KeyPendingPayment      = "pendingPayment"
)

// Store persists the key/value map of each session.
type Store interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	Set(ctx context.Context, sessionID string, values map[string]string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store. A zero ttl never expires sessions.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

// Load returns a copy of the session values.
func (m *MemoryStore) Load(_ context.Context, sessionID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string)
	entry, ok := m.sessions[sessionID]
	if !ok || m.expired(entry) {
		return out, nil
	}
	for k, v := range entry.values {
		out[k] = v
	}
	return out, nil
}

// Set merges values into the session.
func (m *MemoryStore) Set(_ context.Context, sessionID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionID]
	if !ok || m.expired(entry) {
		entry = &memoryEntry{values: make(map[string]string)}
		m.sessions[sessionID] = entry
	}
	for k, v := range values {
		entry.values[k] = v
	}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	return nil
}

// Delete removes keys from the session.
func (m *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.sessions[sessionID]; ok {
		for _, k := range keys {
			delete(entry.values, k)
		}
	}
	return nil
}

// Clear drops the whole session.
func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) expired(entry *memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
