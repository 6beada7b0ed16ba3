package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Role controls access to the admin API surface
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account
type User struct {
	ID           UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	Role         Role
	AvatarID     AvatarID // empty until the user picks an avatar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
