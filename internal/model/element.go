package model

import "time"

// ElementID identifies a placeable element (furniture, obstacle, decoration)
type ElementID string

// Element is a placeable object definition managed by admins
type Element struct {
	ID        ElementID
	Width     int
	Height    int
	Static    bool // static elements block movement in clients
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvatarID identifies a selectable avatar
type AvatarID string

// Avatar is a character appearance users can select
type Avatar struct {
	ID        AvatarID
	Name      string
	ImageURL  string
	CreatedAt time.Time
}

// MapID identifies a map template
type MapID string

// MapElement is an element placement in a map template
type MapElement struct {
	ElementID ElementID
	X         int
	Y         int
}

// GameMap is a template of pre-placed elements that new spaces can copy
type GameMap struct {
	ID              MapID
	Name            string
	Width           int
	Height          int
	Thumbnail       string
	DefaultElements []MapElement
	CreatedAt       time.Time
}
