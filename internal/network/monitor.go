// Package network provides the connectivity signal the sync engine branches on.
package network

import "sync"

// Monitor is an observable online/offline flag. Subscribe delivers the
// current state immediately and one value per transition thereafter.
type Monitor interface {
	IsOnline() bool
	Subscribe() <-chan bool
}

// state is the shared subscriber bookkeeping for monitor implementations.
type state struct {
	mu          sync.Mutex
	online      bool
	subscribers []chan bool
}

func (s *state) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *state) Subscribe() <-chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan bool, 4)
	ch <- s.online
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// setOnline flips the state and notifies subscribers on transitions.
// Slow subscribers drop notifications rather than block the monitor.
func (s *state) setOnline(online bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.online == online {
		return false
	}
	s.online = online

	for _, ch := range s.subscribers {
		select {
		case ch <- online:
		default:
		}
	}
	return true
}

// ManualMonitor is a Monitor whose state is set by the caller. Used in tests
// and in deployments where connectivity is reported by the host platform.
type ManualMonitor struct {
	state
}

func NewManualMonitor(online bool) *ManualMonitor {
	m := &ManualMonitor{}
	m.online = online
	return m
}

// SetOnline updates the state, notifying subscribers if it changed.
func (m *ManualMonitor) SetOnline(online bool) {
	m.setOnline(online)
}
