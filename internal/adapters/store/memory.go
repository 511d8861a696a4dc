// Package store holds the in-memory session pool. Sessions live only
// for the process lifetime; restart means re-login.
package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sit-kite/campus-agent/internal/domain"
	"github.com/sit-kite/campus-agent/internal/ports"
)

// loginFlight is one in-progress login shared by every concurrent
// QueryOr caller for the same account. Fields are written before done
// is closed and read only after.
type loginFlight struct {
	done    chan struct{}
	session domain.Session
	err     error
}

// MemoryStore is a thread-safe session pool keyed by account. Reads
// hand out deep copies so dispatch tasks never share cookie slices;
// rotated state comes back through Insert.
type MemoryStore struct {
	auth ports.Authenticator

	mu       sync.RWMutex
	sessions map[string]domain.Session
	flights  map[string]*loginFlight
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore(auth ports.Authenticator) *MemoryStore {
	return &MemoryStore{
		auth:     auth,
		sessions: make(map[string]domain.Session),
		flights:  make(map[string]*loginFlight),
	}
}

func (m *MemoryStore) ChooseRandomly() (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.sessions) == 0 {
		return nil, domain.ErrNoSessionAvailable
	}

	pick := rand.IntN(len(m.sessions))
	for _, session := range m.sessions {
		if pick == 0 {
			copied := session.Clone()
			return &copied, nil
		}
		pick--
	}

	// Unreachable: the map is non-empty and pick < len.
	return nil, domain.ErrNoSessionAvailable
}

func (m *MemoryStore) QueryOr(ctx context.Context, account, password string) (*domain.Session, error) {
	m.mu.Lock()
	if session, ok := m.sessions[account]; ok {
		m.mu.Unlock()
		copied := session.Clone()
		return &copied, nil
	}
	if flight, ok := m.flights[account]; ok {
		m.mu.Unlock()
		return awaitFlight(ctx, flight)
	}

	flight := &loginFlight{done: make(chan struct{})}
	m.flights[account] = flight
	m.mu.Unlock()

	session, err := m.auth.Login(ctx, account, password)

	m.mu.Lock()
	delete(m.flights, account)
	if err == nil {
		m.sessions[account] = session.Clone()
	}
	m.mu.Unlock()

	if err != nil {
		flight.err = fmt.Errorf("login account %q: %w", account, err)
	} else {
		flight.session = session.Clone()
	}
	close(flight.done)

	if flight.err != nil {
		return nil, flight.err
	}
	copied := flight.session.Clone()
	return &copied, nil
}

func (m *MemoryStore) Insert(session *domain.Session) error {
	if session == nil {
		return fmt.Errorf("nil session")
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Account] = session.Clone()

	return nil
}

// Len reports how many sessions the pool currently holds.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func awaitFlight(ctx context.Context, flight *loginFlight) (*domain.Session, error) {
	select {
	case <-flight.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if flight.err != nil {
		return nil, flight.err
	}
	copied := flight.session.Clone()
	return &copied, nil
}
