// Package state keeps transient per-user conversation data in memory.
package state

import (
	"sync"

	"kodbot/internal/domain"
)

// Store is the per-user conversation state store
type Store interface {
	// Get returns user's state; users never seen are in StateNormal
	Get(userID int64) domain.StateData
	Set(userID int64, data domain.StateData)
	// CompareAndSwap stores next only if the current state equals old
	CompareAndSwap(userID int64, old, next domain.StateData) bool
	// Lock serializes response cycles of one user; call the returned func to release.
	// Set and CompareAndSwap are meant to run inside a cycle.
	Lock(userID int64) (unlock func())
}

// idle is the state of a user with nothing to remember
var idle = domain.StateData{State: domain.StateNormal}

type entry struct {
	cycle sync.Mutex
	// refs counts cycles holding or waiting for the lock, guarded by Memory.mu
	refs int

	mu   sync.Mutex
	data domain.StateData
}

// Memory implements Store with one entry per user.
// The map lock is only held for entry lookup, so different users never wait on each other.
// An entry is dropped when its last cycle ends with the user back to idle.
type Memory struct {
	entries map[int64]*entry
	mu      sync.RWMutex
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{entries: make(map[int64]*entry)}
}

func (m *Memory) entry(userID int64) *entry {
	m.mu.RLock()
	e, exists := m.entries[userID]
	m.mu.RUnlock()
	if exists {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, exists = m.entries[userID]; !exists {
		e = &entry{data: idle}
		m.entries[userID] = e
	}
	return e
}

// Get returns user's current state
func (m *Memory) Get(userID int64) domain.StateData {
	m.mu.RLock()
	e, exists := m.entries[userID]
	m.mu.RUnlock()
	if !exists {
		return domain.StateData{State: domain.StateNormal}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// Set replaces user's state
func (m *Memory) Set(userID int64, data domain.StateData) {
	e := m.entry(userID)
	e.mu.Lock()
	e.data = data.Normalized()
	e.mu.Unlock()
}

// CompareAndSwap replaces user's state if it still equals old
func (m *Memory) CompareAndSwap(userID int64, old, next domain.StateData) bool {
	e := m.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.data != old.Normalized() {
		return false
	}
	e.data = next.Normalized()
	return true
}

// Lock acquires user's response cycle lock
func (m *Memory) Lock(userID int64) func() {
	m.mu.Lock()
	e, exists := m.entries[userID]
	if !exists {
		e = &entry{data: idle}
		m.entries[userID] = e
	}
	e.refs++
	m.mu.Unlock()

	e.cycle.Lock()
	return func() {
		e.cycle.Unlock()
		m.release(userID, e)
	}
}

func (m *Memory) release(userID int64, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs > 0 || m.entries[userID] != e {
		return
	}

	e.mu.Lock()
	isIdle := e.data == idle
	e.mu.Unlock()
	if isIdle {
		delete(m.entries, userID)
	}
}

// Len returns the number of users with stored state
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
