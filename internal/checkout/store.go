package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live checkout sessions in memory. Sessions own running
// timers, so they cannot be serialized out of process; abandoned ones
// are swept after ttl of inactivity.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewStore(ttl time.Duration, sweepInterval time.Duration) *Store {
	st := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go st.sweep(sweepInterval)
	return st
}

func (st *Store) Put(sess *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID()] = sess
}

func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		sess.Close()
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop halts the sweeper and releases every session's timers.
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.stop)
	})

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		sess.Close()
		delete(st.sessions, id)
	}
}

func (st *Store) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.evictExpired(now)
		}
	}
}

func (st *Store) evictExpired(now time.Time) {
	st.mu.Lock()
	var expired []*Session
	for id, sess := range st.sessions {
		if now.Sub(sess.lastActivity()) > st.ttl {
			expired = append(expired, sess)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
}
