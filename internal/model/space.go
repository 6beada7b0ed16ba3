package model

import "time"

// SpaceID identifies a space (a joinable grid room)
type SpaceID string

// DefaultGridWidth and DefaultGridHeight are the grid bounds used when a
// space is created without explicit dimensions. They match an 800x600
// canvas divided into 50px cells.
const (
	DefaultGridWidth  = 16
	DefaultGridHeight = 12
)

// Space is a named 2D grid that sessions can occupy. The grid bounds are
// a per-space attribute; the realtime layer sources them at join time.
type Space struct {
	ID        SpaceID
	Name      string
	Width     int
	Height    int
	CreatorID UserID
	MapID     MapID // empty for blank spaces
	Thumbnail string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InBounds reports whether (x, y) lies within the space's grid
func (s *Space) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// SpaceElementID identifies an element placed inside a space
type SpaceElementID string

// SpaceElement is an element instance placed at a grid position in a space
type SpaceElement struct {
	ID        SpaceElementID
	SpaceID   SpaceID
	ElementID ElementID
	X         int
	Y         int
}
