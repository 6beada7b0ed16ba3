package ws

import (
	"log/slog"
	"sync"
)

// Registry is the single source of truth for room membership. Rooms are
// created lazily on first join and garbage-collected when their last
// member leaves.
//
// All mutations (join, leave) take the write lock, so the membership
// snapshot a joining session captures and its own registration happen
// atomically with respect to any other session's join. Broadcasts take
// the read lock and copy the member list before sending, so a slow
// recipient never holds the lock.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string][]*Session
	logger *slog.Logger
}

// NewRegistry creates an empty room registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string][]*Session),
		logger: logger.With(slog.String("component", "registry")),
	}
}

// Join registers a session in a room and returns the members that were
// present before it, in join order. The snapshot excludes the joining
// session, so a session never sees itself in its own existing-users list.
// Join is an upsert by session key: a duplicate join replaces the prior
// entry instead of appending a second one.
func (r *Registry) Join(spaceID string, s *Session) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[spaceID]
	existing := make([]*Session, 0, len(members))
	kept := members[:0]
	for _, m := range members {
		if m.key == s.key {
			continue
		}
		existing = append(existing, m)
		kept = append(kept, m)
	}
	r.rooms[spaceID] = append(kept, s)

	r.logger.Info("session joined room",
		slog.String("space_id", spaceID),
		slog.String("session_key", s.key),
		slog.Int("members", len(r.rooms[spaceID])))
	return existing
}

// Leave removes a session from a room by its session key. Unknown rooms
// and absent sessions are no-ops. An emptied room is removed from the
// registry.
func (r *Registry) Leave(spaceID, sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[spaceID]
	if !ok {
		r.logger.Debug("leave for unknown room", slog.String("space_id", spaceID))
		return
	}

	kept := members[:0]
	for _, m := range members {
		if m.key != sessionKey {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(r.rooms, spaceID)
		r.logger.Info("room removed", slog.String("space_id", spaceID))
		return
	}
	r.rooms[spaceID] = kept
}

// Broadcast delivers a frame to every member of a room except the one
// whose session key matches exclude. Sends are fire-and-forget: delivery
// to a slow or disconnected member never blocks the others. An unknown
// room is a logged no-op.
func (r *Registry) Broadcast(spaceID, exclude string, frame []byte) {
	r.mu.RLock()
	members, ok := r.rooms[spaceID]
	if !ok {
		r.mu.RUnlock()
		r.logger.Debug("broadcast to unknown room", slog.String("space_id", spaceID))
		return
	}
	recipients := make([]*Session, 0, len(members))
	for _, m := range members {
		if m.key != exclude {
			recipients = append(recipients, m)
		}
	}
	r.mu.RUnlock()

	for _, m := range recipients {
		m.conn.Send(frame)
	}
}

// Member returns the room member owned by the given principal, or nil.
// The principal is read through the session mutex since a repeat join
// can rewrite it while the lookup runs.
func (r *Registry) Member(spaceID, userID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rooms[spaceID] {
		if m.UserID() == userID {
			return m
		}
	}
	return nil
}

// RoomCount returns the number of live rooms
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// MemberCount returns the number of members in a room, 0 if unknown
func (r *Registry) MemberCount(spaceID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[spaceID])
}
