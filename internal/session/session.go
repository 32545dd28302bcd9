// Package session keeps the current signed-in state in one place and lets
// interested parts of the app observe changes to it. It replaces scattered
// "is there a token?" checks with a single owner of that answer.
package session

import (
	"sync"

	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/storage"
)

// State is a snapshot of the session at one point in time.
type State struct {
	Authenticated bool
	User          *models.User
	TenantID      string
}

// Listener receives the new state after every change.
type Listener func(State)

// Manager is safe for concurrent use. Listeners are invoked synchronously,
// outside the lock.
type Manager struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New builds a manager seeded from local storage, so a tenant selected in a
// previous run is visible before the first sign-in.
func New(local storage.Store) *Manager {
	m := &Manager{listeners: make(map[int]Listener)}
	if token, err := local.Get(storage.KeyAuthToken); err == nil && token != "" {
		m.state.Authenticated = true
	}
	if tenantID, err := local.Get(storage.KeyTenantID); err == nil {
		m.state.TenantID = tenantID
	}
	return m
}

// Current returns the latest snapshot.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers a listener and returns a function that removes it.
// The listener is immediately called with the current state.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	state := m.state
	m.mu.Unlock()

	fn(state)
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// SignIn records a successful authentication.
func (m *Manager) SignIn(user models.User) {
	m.update(func(s *State) {
		s.Authenticated = true
		s.User = &user
	})
}

// SignOut clears everything, including the tenant selection.
func (m *Manager) SignOut() {
	m.update(func(s *State) {
		*s = State{}
	})
}

// SetUser refreshes the cached profile without touching anything else.
func (m *Manager) SetUser(user *models.User) {
	m.update(func(s *State) {
		s.User = user
		s.Authenticated = user != nil
	})
}

// SetTenant switches the active tenant. An empty id clears the selection.
func (m *Manager) SetTenant(tenantID string) {
	m.update(func(s *State) {
		s.TenantID = tenantID
	})
}

func (m *Manager) update(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	state := m.state
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
