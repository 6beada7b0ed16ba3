package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridspace-io/gridspace/internal/dependencies/random"
	"github.com/gridspace-io/gridspace/internal/model"
)

const (
	// MaxHealth is the health every session spawns with
	MaxHealth = 100
	// DefaultDamage is applied when a bullet-hit carries no damage value
	DefaultDamage = 20

	sessionKeyLength = 10
)

// Conn is the transport a session writes to. Send is fire-and-forget.
type Conn interface {
	Send(frame []byte)
	Close()
}

// TokenVerifier validates a bearer token and yields the principal it
// carries. The auth service implements it.
type TokenVerifier interface {
	Verify(token string) (model.UserID, error)
}

// SpaceDirectory answers space existence and grid dimensions at join
// time. The space service implements it.
type SpaceDirectory interface {
	GetSpace(ctx context.Context, id model.SpaceID) (*model.Space, error)
}

// UserLookup resolves a principal's display name at join time
type UserLookup interface {
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
}

type sessionState int

const (
	stateConnected sessionState = iota // transport open, not yet joined
	stateActive                        // joined a space
	stateClosed                        // terminal
)

// Session owns one connection's authoritative state. It is the sole
// place movement and combat intents are validated. Health is written by
// other sessions' bullet-hit handlers, and every joined field is
// re-written when the client sends another join frame, so all mutable
// state sits behind the session mutex.
type Session struct {
	key  string // transient, local identity only; never a security boundary
	conn Conn

	registry *Registry
	verifier TokenVerifier
	spaces   SpaceDirectory
	users    UserLookup
	random   random.Random
	logger   *slog.Logger

	mu       sync.Mutex
	state    sessionState
	userID   string
	username string
	spaceID  string
	width    int
	height   int
	x, y     int
	health   int
}

// NewSession creates a session for a freshly accepted connection
func NewSession(conn Conn, registry *Registry, verifier TokenVerifier, spaces SpaceDirectory, users UserLookup, rnd random.Random, logger *slog.Logger) *Session {
	key := rnd.String(sessionKeyLength, random.SessionKeyAlphabet)
	return &Session{
		key:      key,
		conn:     conn,
		registry: registry,
		verifier: verifier,
		spaces:   spaces,
		users:    users,
		random:   rnd,
		logger:   logger.With(slog.String("session_key", key)),
		health:   MaxHealth,
	}
}

// Key returns the session's transient key
func (s *Session) Key() string {
	return s.key
}

// UserID returns the authenticated principal id, empty before join
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// HandleMessage processes one inbound frame. Malformed frames and
// unknown types are dropped; they never terminate the session.
func (s *Session) HandleMessage(ctx context.Context, data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		s.logger.Debug("dropping malformed frame")
		return
	}

	switch env.Type {
	case MessageJoin:
		s.handleJoin(ctx, env)
	case MessageMove:
		s.handleMove(env)
	case MessageShoot:
		s.handleShoot(env)
	case MessageBulletHit:
		s.handleBulletHit(env)
	default:
		s.logger.Debug("dropping frame with unknown type", slog.String("type", env.Type))
	}
}

// handleJoin authenticates the session and registers it in a room.
// Verification failure or an unknown space closes the connection without
// sending anything.
func (s *Session) handleJoin(ctx context.Context, env *Envelope) {
	var p JoinPayload
	if err := DecodePayload(env, &p); err != nil {
		s.logger.Debug("dropping join with bad payload")
		return
	}

	userID, err := s.verifier.Verify(p.Token)
	if err != nil || userID == "" {
		s.logger.Info("join rejected: invalid token")
		s.close()
		return
	}

	username := "User " + string(userID)
	if user, err := s.users.GetUser(ctx, userID); err == nil {
		username = user.Username
	}

	space, err := s.spaces.GetSpace(ctx, model.SpaceID(p.SpaceID))
	if err != nil {
		s.logger.Info("join rejected: unknown space", slog.String("space_id", p.SpaceID))
		s.close()
		return
	}

	spawnX := s.random.Intn(space.Width)
	spawnY := s.random.Intn(space.Height)

	// A session occupies at most one room: a join while active in a
	// different space announces the departure and leaves the old room
	// before the new registration.
	s.mu.Lock()
	prevSpace := ""
	if s.state == stateActive && s.spaceID != p.SpaceID {
		prevSpace = s.spaceID
	}
	s.mu.Unlock()
	if prevSpace != "" {
		s.broadcast(MessageUserLeft, UserLeftPayload{UserID: s.userID})
		s.registry.Leave(prevSpace, s.key)
	}

	// Other sessions read identity fields through stateSnapshot, so a
	// repeat join's writes go through the same mutex.
	s.mu.Lock()
	s.userID = string(userID)
	s.username = username
	s.spaceID = p.SpaceID
	s.width = space.Width
	s.height = space.Height
	s.state = stateActive
	s.x = spawnX
	s.y = spawnY
	s.health = MaxHealth
	s.mu.Unlock()

	// Snapshot-then-register happens atomically inside the registry, so
	// the session never sees itself among the existing users.
	existing := s.registry.Join(p.SpaceID, s)

	users := make([]UserState, 0, len(existing))
	for _, m := range existing {
		users = append(users, m.stateSnapshot())
	}

	s.send(MessageSpaceJoined, SpaceJoinedPayload{
		UserID: s.userID,
		Spawn:  Position{X: spawnX, Y: spawnY},
		Users:  users,
	})
	s.broadcast(MessageUserJoined, s.stateSnapshot())

	s.logger.Info("session joined",
		slog.String("user_id", s.userID),
		slog.String("space_id", s.spaceID),
		slog.Int("spawn_x", spawnX),
		slog.Int("spawn_y", spawnY),
		slog.Int("existing_users", len(users)))
}

// handleMove validates a movement intent: exactly one grid step along a
// single axis, landing inside the space. A rejected move answers the
// sender only, with the unchanged authoritative position.
func (s *Session) handleMove(env *Envelope) {
	if !s.active() {
		return
	}

	var p MovePayload
	if err := DecodePayload(env, &p); err != nil {
		s.logger.Debug("dropping move with bad payload")
		return
	}

	s.mu.Lock()
	dx := abs(s.x - p.X)
	dy := abs(s.y - p.Y)
	validStep := (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
	inBounds := p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height

	if validStep && inBounds {
		s.x = p.X
		s.y = p.Y
		s.mu.Unlock()
		s.broadcast(MessageMovement, s.stateSnapshot())
		return
	}
	rejected := Position{X: s.x, Y: s.y}
	s.mu.Unlock()

	s.send(MessageMovementRejected, rejected)
}

// handleShoot relays a bullet to the room. The only server-side check is
// ownership: the declared owner must be this session's principal. The
// server never simulates the projectile.
func (s *Session) handleShoot(env *Envelope) {
	if !s.active() {
		return
	}

	var p ShootPayload
	if err := DecodePayload(env, &p); err != nil {
		s.logger.Debug("dropping shoot with bad payload")
		return
	}
	if p.Bullet.Owner != s.userID {
		s.logger.Debug("dropping shoot with foreign owner",
			slog.String("owner", p.Bullet.Owner))
		return
	}

	s.broadcast(MessageBulletShot, BulletShotPayload{Bullet: p.Bullet})
}

// handleBulletHit applies client-reported damage to the named target.
// Unknown targets and already-dead targets are silently ignored. A hit
// that brings health to exactly zero additionally announces the death,
// exactly once.
func (s *Session) handleBulletHit(env *Envelope) {
	if !s.active() {
		return
	}

	var p BulletHitPayload
	if err := DecodePayload(env, &p); err != nil {
		s.logger.Debug("dropping bullet-hit with bad payload")
		return
	}
	if p.TargetUserID == "" {
		return
	}

	damage := p.Damage
	if damage <= 0 {
		damage = DefaultDamage
	}

	target := s.registry.Member(s.spaceID, p.TargetUserID)
	if target == nil {
		s.logger.Debug("dropping bullet-hit for unknown target",
			slog.String("target", p.TargetUserID))
		return
	}

	health, died, applied := target.applyDamage(damage)
	if !applied {
		return
	}

	s.broadcast(MessageHealthUpdate, HealthUpdatePayload{
		UserID:     p.TargetUserID,
		Health:     health,
		Damage:     damage,
		AttackerID: s.userID,
	})
	if died {
		s.broadcast(MessagePlayerDeath, PlayerDeathPayload{
			UserID:   p.TargetUserID,
			KillerID: s.userID,
		})
	}
}

// Destroy tears the session down after a transport close or protocol
// violation: it announces the departure to the room, deregisters, and
// closes the transport. Terminal; a reconnecting client gets a brand-new
// session with a fresh spawn.
func (s *Session) Destroy() {
	s.mu.Lock()
	wasActive := s.state == stateActive
	s.state = stateClosed
	s.mu.Unlock()

	if wasActive {
		s.broadcast(MessageUserLeft, UserLeftPayload{UserID: s.userID})
		s.registry.Leave(s.spaceID, s.key)
	}
	s.conn.Close()
}

// applyDamage decrements health, floored at zero. It reports the new
// health, whether this hit caused death, and whether it applied at all
// (hits on an already-dead session do not).
func (s *Session) applyDamage(damage int) (health int, died, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health <= 0 {
		return s.health, false, false
	}
	s.health -= damage
	if s.health < 0 {
		s.health = 0
	}
	return s.health, s.health == 0, true
}

// stateSnapshot returns the session's current authoritative state
func (s *Session) stateSnapshot() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return UserState{
		UserID:   s.userID,
		Username: s.username,
		X:        s.x,
		Y:        s.y,
		Health:   s.health,
	}
}

func (s *Session) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateActive
}

// send delivers a message to this session's own connection
func (s *Session) send(msgType string, payload any) {
	frame, err := Encode(msgType, payload)
	if err != nil {
		s.logger.Error("failed to encode message",
			slog.String("type", msgType),
			slog.Any("error", err))
		return
	}
	s.conn.Send(frame)
}

// broadcast delivers a message to every other member of the session's room
func (s *Session) broadcast(msgType string, payload any) {
	frame, err := Encode(msgType, payload)
	if err != nil {
		s.logger.Error("failed to encode broadcast",
			slog.String("type", msgType),
			slog.Any("error", err))
		return
	}
	s.registry.Broadcast(s.spaceID, s.key, frame)
}

// close terminates the connection without emitting anything. Used for
// authentication and space-lookup failures during join.
func (s *Session) close() {
	s.mu.Lock()
	s.state = stateClosed
	s.mu.Unlock()
	s.conn.Close()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
