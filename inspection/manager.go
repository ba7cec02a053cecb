// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inspection

import (
	"sync"

	"github.com/sdis-tools/firecheck/models"
)

// Manager tracks open sessions by id. Sessions are never shared across
// assets; each entry is owned by the inspection that opened it.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Open creates a session and registers it.
func (m *Manager) Open(tpl models.FormTemplate, asset models.Asset, operator models.Inspector) (*Session, error) {
	s, err := Open(tpl, asset, operator)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes the session and drops it from the registry. Safe to call
// for ids that are already gone.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
