package live

import (
	"sync"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
)

// trackedSession is the server-side diffing state for one session id
type trackedSession struct {
	previous     map[string]entities.PersonStatus
	unknownCount int
	lastSeen     time.Time
}

// tracker keeps the previous frame state per session so consecutive frames
// can be diffed without the client holding state.
type tracker struct {
	mu       sync.Mutex
	sessions map[string]*trackedSession
}

func newTracker() *tracker {
	return &tracker{sessions: make(map[string]*trackedSession)}
}

// swap replaces the stored state for a session and returns the prior status
// map plus the prior unrecognized-face count.
func (t *tracker) swap(sessionID string, current map[string]entities.PersonStatus, unknownCount int, now time.Time) (map[string]entities.PersonStatus, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[sessionID]
	if !ok {
		sess = &trackedSession{previous: map[string]entities.PersonStatus{}}
		t.sessions[sessionID] = sess
	}
	prev, prevUnknown := sess.previous, sess.unknownCount
	sess.previous = current
	sess.unknownCount = unknownCount
	sess.lastSeen = now
	return prev, prevUnknown
}

// forget drops the state for a session
func (t *tracker) forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sessionID)
}

// sweep removes sessions not seen since the cutoff
func (t *tracker) sweep(cutoff time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, sess := range t.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(t.sessions, id)
		}
	}
}
