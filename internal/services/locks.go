package services

import "sync"

// userLocks hands out one mutex per user so read-modify-write sequences on
// the same aggregate never interleave within this process. The map only grows
// with distinct users seen; entries are a bare mutex each.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{m: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	um, ok := l.m[userID]
	if !ok {
		um = &sync.Mutex{}
		l.m[userID] = um
	}
	l.mu.Unlock()

	um.Lock()
	return um.Unlock
}
