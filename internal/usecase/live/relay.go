package live

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// RelayOptions tunes one relay store instance
type RelayOptions struct {
	Cap       int           // max events kept per session, oldest dropped
	PollLimit int           // max events returned by one poll
	TTL       time.Duration // inactivity window before a session is swept
	Now       func() time.Time
}

// relaySession holds the event ring for one opaque session id.
// events are kept newest-first.
type relaySession struct {
	lectureID   string
	events      []entities.ActivityEvent
	lastUpdated time.Time
}

// Relay is the in-memory event store bridging the instructor window and the
// presentation window. Sessions live for the process lifetime only; a
// restart drops them and the windows re-handshake with a fresh session id.
type Relay struct {
	mu        sync.Mutex
	sessions  map[string]*relaySession
	cap       int
	pollLimit int
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewRelay creates a relay store
func NewRelay(opts RelayOptions, logger *zap.Logger) *Relay {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Relay{
		sessions:  make(map[string]*relaySession),
		cap:       opts.Cap,
		pollLimit: opts.PollLimit,
		ttl:       opts.TTL,
		now:       opts.Now,
		logger:    logger,
	}
}

// Append validates and stores events for a session, creating the session on
// first use. Events missing an id or timestamp get server-assigned defaults.
// Returns the stored events (with defaults filled in).
func (r *Relay) Append(sessionID, lectureID string, events []entities.ActivityEvent) ([]entities.ActivityEvent, error) {
	if sessionID == "" {
		return nil, usecaseErrors.ErrMissingSessionID
	}
	for i := range events {
		if events[i].Message == "" {
			return nil, usecaseErrors.ErrEventMissingBody
		}
		if events[i].Type == "" {
			return nil, usecaseErrors.ErrEventMissingType
		}
		if !events[i].Type.IsValid() {
			return nil, usecaseErrors.ErrEventInvalidType
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	sess, ok := r.sessions[sessionID]
	if !ok {
		sess = &relaySession{lectureID: lectureID}
		r.sessions[sessionID] = sess
	}

	stored := make([]entities.ActivityEvent, len(events))
	for i, ev := range events {
		if ev.ID == "" {
			ev.ID = uuid.New().String()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = now
		}
		stored[i] = ev
		// newest-first: each stored event goes to the front
		sess.events = append([]entities.ActivityEvent{ev}, sess.events...)
	}
	if r.cap > 0 && len(sess.events) > r.cap {
		sess.events = sess.events[:r.cap]
	}
	sess.lastUpdated = now

	return stored, nil
}

// Poll returns events for a session, newest-first, optionally only those
// strictly after since, capped at the poll limit. An unknown session yields
// an empty slice, never an error.
func (r *Relay) Poll(sessionID string, since *time.Time) []entities.ActivityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return []entities.ActivityEvent{}
	}

	out := make([]entities.ActivityEvent, 0, len(sess.events))
	for _, ev := range sess.events {
		if since != nil && !ev.Timestamp.After(*since) {
			continue
		}
		out = append(out, ev)
		if r.pollLimit > 0 && len(out) >= r.pollLimit {
			break
		}
	}
	return out
}

// Sweep removes sessions idle past the TTL and returns how many were removed
func (r *Relay) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, sess := range r.sessions {
		if sess.lastUpdated.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 && r.logger != nil {
		r.logger.Info("relay sweep removed idle sessions", zap.Int("removed", removed))
	}
	return removed
}

// StartSweeper runs Sweep on a ticker until ctx is cancelled
func (r *Relay) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}

// SessionCount reports the number of live sessions
func (r *Relay) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
