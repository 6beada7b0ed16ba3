package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrInvalidRole    = errors.New("invalid role")

	// Space errors
	ErrSpaceNotFound        = errors.New("space not found")
	ErrNotSpaceCreator      = errors.New("user is not the space creator")
	ErrInvalidDimensions    = errors.New("invalid space dimensions")
	ErrInvalidPosition      = errors.New("position is outside the space grid")
	ErrSpaceElementNotFound = errors.New("space element not found")

	// Catalog errors
	ErrElementNotFound = errors.New("element not found")
	ErrAvatarNotFound  = errors.New("avatar not found")
	ErrMapNotFound     = errors.New("map not found")
)
