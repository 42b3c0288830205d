package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

// session holds the state of one interactive preview session.
type session struct {
	ID        string
	ExpiresAt time.Time

	// Baseline is set once by the first successful calculation and then
	// left alone so later previews always diff against the same anchor.
	Baseline *types.QuoteResult
}

// sessionStore is an in-memory session table. Entries expire after a TTL and
// are pruned lazily on access.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session

	// now is swapped out in tests
	now func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// get returns the session for id, creating a fresh one when id is empty,
// unknown or expired. Accessing a session extends its lifetime.
func (st *sessionStore) get(id string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.pruneLocked()

	if id != "" {
		if sess, ok := st.sessions[id]; ok {
			sess.ExpiresAt = st.now().Add(st.ttl)
			return sess
		}
	}

	sess := &session{
		ID:        uuid.NewString(),
		ExpiresAt: st.now().Add(st.ttl),
	}
	st.sessions[sess.ID] = sess
	return sess
}

// captureBaseline records result as the session baseline if none is set yet
// and returns the baseline in effect afterwards. Deep copies cross the
// boundary in both directions so neither the caller's result nor the
// returned baseline can alias the stored one.
func (st *sessionStore) captureBaseline(id string, result types.QuoteResult) *types.QuoteResult {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil
	}
	if sess.Baseline == nil {
		cp := result.Clone()
		sess.Baseline = &cp
	}
	out := sess.Baseline.Clone()
	return &out
}

func (st *sessionStore) pruneLocked() {
	now := st.now()
	for id, sess := range st.sessions {
		if now.After(sess.ExpiresAt) {
			delete(st.sessions, id)
		}
	}
}
