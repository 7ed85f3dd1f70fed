package casefile

import "sync"

// sessionLocks serializes mutations per session. Two drivers submitting
// concurrently must not both observe "partner draft missing" and skip
// aggregation; the read-modify-write sequences in SubmitDraft and the
// signing operations run under the session's lock.
//
// Lock entries are never reclaimed, matching the session lifecycle: sessions
// are logically terminal at COMPLETED but never deleted.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// acquire locks the session's mutex and returns its unlock function
func (l *sessionLocks) acquire(sessionID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[sessionID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
