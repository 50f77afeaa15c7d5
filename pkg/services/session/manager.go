package session

import (
	"sync"

	"github.com/fadedpez/eights/internal/types"
)

// Manager keeps one session per player
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []Option
}

// NewManager creates a manager whose sessions all get opts
func NewManager(opts ...Option) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Start begins a new game for the player, replacing any game in progress
func (m *Manager) Start(playerID, name string, opts ...Option) *Session {
	all := append(append([]Option(nil), m.opts...), opts...)
	s := New(playerID, name, all...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[playerID] = s
	return s
}

// Get returns the player's session
func (m *Manager) Get(playerID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[playerID]
	if !ok {
		return nil, types.NewGameError(types.ErrSessionNotFound, "no game in progress, start one first")
	}
	return s, nil
}

// End forgets the player's session
func (m *Manager) End(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[playerID]; !ok {
		return types.NewGameError(types.ErrSessionNotFound, "no game in progress")
	}
	delete(m.sessions, playerID)
	return nil
}

// Len is the number of sessions in progress
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
