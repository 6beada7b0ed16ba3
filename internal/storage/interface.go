package storage

import (
	"context"

	"github.com/gridspace-io/gridspace/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []model.UserID) ([]*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error

	// Space operations
	SaveSpace(ctx context.Context, space *model.Space) error
	GetSpace(ctx context.Context, id model.SpaceID) (*model.Space, error)
	DeleteSpace(ctx context.Context, id model.SpaceID) error
	ListSpacesByCreator(ctx context.Context, creatorID model.UserID) ([]*model.Space, error)

	// Space element operations
	SaveSpaceElement(ctx context.Context, se *model.SpaceElement) error
	GetSpaceElement(ctx context.Context, id model.SpaceElementID) (*model.SpaceElement, error)
	DeleteSpaceElement(ctx context.Context, id model.SpaceElementID) error
	ListSpaceElements(ctx context.Context, spaceID model.SpaceID) ([]*model.SpaceElement, error)
	DeleteSpaceElementsForSpace(ctx context.Context, spaceID model.SpaceID) error

	// Element catalog operations
	SaveElement(ctx context.Context, element *model.Element) error
	GetElement(ctx context.Context, id model.ElementID) (*model.Element, error)
	ListElements(ctx context.Context) ([]*model.Element, error)

	// Avatar catalog operations
	SaveAvatar(ctx context.Context, avatar *model.Avatar) error
	GetAvatar(ctx context.Context, id model.AvatarID) (*model.Avatar, error)
	ListAvatars(ctx context.Context) ([]*model.Avatar, error)

	// Map catalog operations
	SaveMap(ctx context.Context, m *model.GameMap) error
	GetMap(ctx context.Context, id model.MapID) (*model.GameMap, error)
	ListMaps(ctx context.Context) ([]*model.GameMap, error)
}
