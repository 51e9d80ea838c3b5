package cart

import "sync"

// Manager owns one Store per signed-in user. A store is created on first use
// and destroyed when the session ends (sign-out); carts do not survive that.
type Manager struct {
	mu     sync.RWMutex
	stores map[int]*Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[int]*Store)}
}

func (m *Manager) Get(userID int) *Store {
	m.mu.RLock()
	st, ok := m.stores[userID]
	m.mu.RUnlock()
	if ok {
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[userID]; ok {
		return st
	}
	st = NewStore()
	m.stores[userID] = st
	return st
}

// Destroy drops the user's store entirely.
func (m *Manager) Destroy(userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}

// CloseSession is the sign-out hook; it discards the user's cart.
func (m *Manager) CloseSession(userID int) {
	m.Destroy(userID)
}
