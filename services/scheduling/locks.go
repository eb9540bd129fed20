package scheduling

import (
	"context"
	"sync"
	"time"
)

// businessLocks serializes mutations per business id. Each business gets a
// one-slot semaphore, so the check-then-commit sequence is a single critical
// section; operations on different businesses proceed in parallel. Entries
// are reference-counted and dropped once the last holder or waiter leaves,
// so the map stays proportional to in-flight work.
type businessLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func newBusinessLocks() *businessLocks {
	return &businessLocks{entries: make(map[string]*lockEntry)}
}

func (l *businessLocks) checkout(businessID string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[businessID]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[businessID] = e
	}
	e.refs++
	return e
}

func (l *businessLocks) checkin(businessID string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, businessID)
	}
}

// acquire blocks until the business's critical section is free, the wait
// budget is exhausted, or ctx is cancelled. On success the returned release
// func must be called exactly once. Once acquired, the section runs to
// completion: caller abandonment no longer interrupts it.
func (l *businessLocks) acquire(ctx context.Context, businessID string, wait time.Duration) (release func(), err error) {
	e := l.checkout(businessID)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			l.checkin(businessID, e)
		}, nil
	case <-timer.C:
		l.checkin(businessID, e)
		return nil, errBusy("business %s is busy, try again", businessID)
	case <-ctx.Done():
		l.checkin(businessID, e)
		return nil, errBusy("request cancelled while waiting for business %s", businessID)
	}
}
