package ws

import "encoding/json"

// Inbound message types (client -> server)
const (
	MessageJoin      = "join"
	MessageMove      = "move"
	MessageShoot     = "shoot"
	MessageBulletHit = "bullet-hit"
)

// Outbound message types (server -> client)
const (
	MessageSpaceJoined      = "space-joined"
	MessageUserJoined       = "user-joined"
	MessageMovement         = "movement"
	MessageMovementRejected = "movement-rejected"
	MessageUserLeft         = "user-left"
	MessageBulletShot       = "bullet-shot"
	MessageHealthUpdate     = "health-update"
	MessagePlayerDeath      = "player-death"
)

// Envelope is the wire shape of every frame in both directions
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the payload of an inbound join frame
type JoinPayload struct {
	SpaceID string `json:"spaceId"`
	Token   string `json:"token"`
}

// MovePayload is the payload of an inbound move frame. UserID is sent by
// some clients but ignored; identity comes from the session.
type MovePayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	UserID string `json:"userId,omitempty"`
}

// Bullet is a client-simulated projectile. Direction is relayed untouched
// since its shape is client-defined.
type Bullet struct {
	ID        string          `json:"id"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Direction json.RawMessage `json:"direction,omitempty"`
	Speed     float64         `json:"speed"`
	Owner     string          `json:"owner"`
}

// ShootPayload is the payload of an inbound shoot frame
type ShootPayload struct {
	Bullet Bullet `json:"bullet"`
}

// BulletHitPayload is the payload of an inbound bullet-hit frame
type BulletHitPayload struct {
	TargetUserID string `json:"targetUserId"`
	Damage       int    `json:"damage,omitempty"`
}

// Position is a grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UserState is a member's authoritative state as seen by other members
type UserState struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Health   int    `json:"health"`
}

// SpaceJoinedPayload is sent to a session after a successful join
type SpaceJoinedPayload struct {
	UserID string      `json:"userId"`
	Spawn  Position    `json:"spawn"`
	Users  []UserState `json:"users"`
}

// UserLeftPayload announces a departed member
type UserLeftPayload struct {
	UserID string `json:"userId"`
}

// BulletShotPayload relays a fired bullet to the room
type BulletShotPayload struct {
	Bullet Bullet `json:"bullet"`
}

// HealthUpdatePayload announces a member's new health after a hit
type HealthUpdatePayload struct {
	UserID     string `json:"userId"`
	Health     int    `json:"health"`
	Damage     int    `json:"damage,omitempty"`
	AttackerID string `json:"attackerId,omitempty"`
}

// PlayerDeathPayload announces a member's health reaching zero
type PlayerDeathPayload struct {
	UserID   string `json:"userId"`
	KillerID string `json:"killerId,omitempty"`
}
