package space

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gridspace-io/gridspace/internal/dependencies/clock"
	"github.com/gridspace-io/gridspace/internal/dependencies/random"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage"
)

const idLength = 12

// idAlphabet is the character set for generated space and element ids
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service is the space directory: it owns space creation, listing,
// deletion, and the placed elements inside each space. The realtime layer
// only reads from it (existence + grid dimensions at join time).
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new space Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "space")),
	}
}

// ParseDimensions parses a "WxH" dimension string into width and height
func ParseDimensions(dimensions string) (int, int, error) {
	parts := strings.SplitN(dimensions, "x", 2)
	if len(parts) != 2 {
		return 0, 0, model.ErrInvalidDimensions
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, model.ErrInvalidDimensions
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, model.ErrInvalidDimensions
	}
	if width <= 0 || height <= 0 {
		return 0, 0, model.ErrInvalidDimensions
	}
	return width, height, nil
}

// CreateSpace creates a space for the given creator. Dimensions are a
// "WxH" string; empty means the default grid. If mapID is set, the map's
// dimensions win and its default elements are copied into the space.
func (s *Service) CreateSpace(ctx context.Context, creatorID model.UserID, name, dimensions string, mapID model.MapID) (*model.Space, error) {
	width, height := model.DefaultGridWidth, model.DefaultGridHeight
	if dimensions != "" {
		var err error
		width, height, err = ParseDimensions(dimensions)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	space := &model.Space{
		ID:        model.SpaceID("sp_" + s.random.String(idLength, idAlphabet)),
		Name:      name,
		Width:     width,
		Height:    height,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if mapID != "" {
		m, err := s.storage.GetMap(ctx, mapID)
		if err != nil {
			return nil, err
		}
		space.MapID = m.ID
		space.Width = m.Width
		space.Height = m.Height
		space.Thumbnail = m.Thumbnail

		if err := s.storage.SaveSpace(ctx, space); err != nil {
			return nil, err
		}
		for _, me := range m.DefaultElements {
			se := &model.SpaceElement{
				ID:        s.newSpaceElementID(),
				SpaceID:   space.ID,
				ElementID: me.ElementID,
				X:         me.X,
				Y:         me.Y,
			}
			if err := s.storage.SaveSpaceElement(ctx, se); err != nil {
				return nil, err
			}
		}
	} else {
		if err := s.storage.SaveSpace(ctx, space); err != nil {
			return nil, err
		}
	}

	s.logger.Info("space created",
		slog.String("space_id", string(space.ID)),
		slog.String("creator_id", string(creatorID)),
		slog.String("dimensions", fmt.Sprintf("%dx%d", space.Width, space.Height)))
	return space, nil
}

// GetSpace retrieves a space by id
func (s *Service) GetSpace(ctx context.Context, id model.SpaceID) (*model.Space, error) {
	return s.storage.GetSpace(ctx, id)
}

// GetSpaceElements returns the elements placed in a space
func (s *Service) GetSpaceElements(ctx context.Context, id model.SpaceID) ([]*model.SpaceElement, error) {
	if _, err := s.storage.GetSpace(ctx, id); err != nil {
		return nil, err
	}
	return s.storage.ListSpaceElements(ctx, id)
}

// ListSpaces returns the spaces created by a user
func (s *Service) ListSpaces(ctx context.Context, creatorID model.UserID) ([]*model.Space, error) {
	return s.storage.ListSpacesByCreator(ctx, creatorID)
}

// DeleteSpace deletes a space and its placed elements. Only the creator
// may delete a space.
func (s *Service) DeleteSpace(ctx context.Context, id model.SpaceID, requesterID model.UserID) error {
	space, err := s.storage.GetSpace(ctx, id)
	if err != nil {
		return err
	}
	if space.CreatorID != requesterID {
		return model.ErrNotSpaceCreator
	}

	if err := s.storage.DeleteSpaceElementsForSpace(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteSpace(ctx, id); err != nil {
		return err
	}

	s.logger.Info("space deleted", slog.String("space_id", string(id)))
	return nil
}

// AddElement places an element in a space at a grid position
func (s *Service) AddElement(ctx context.Context, spaceID model.SpaceID, elementID model.ElementID, x, y int) (*model.SpaceElement, error) {
	space, err := s.storage.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.InBounds(x, y) {
		return nil, model.ErrInvalidPosition
	}
	if _, err := s.storage.GetElement(ctx, elementID); err != nil {
		return nil, err
	}

	se := &model.SpaceElement{
		ID:        s.newSpaceElementID(),
		SpaceID:   spaceID,
		ElementID: elementID,
		X:         x,
		Y:         y,
	}
	if err := s.storage.SaveSpaceElement(ctx, se); err != nil {
		return nil, err
	}
	return se, nil
}

// RemoveElement removes a placed element from its space
func (s *Service) RemoveElement(ctx context.Context, id model.SpaceElementID) error {
	if _, err := s.storage.GetSpaceElement(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteSpaceElement(ctx, id)
}

func (s *Service) newSpaceElementID() model.SpaceElementID {
	return model.SpaceElementID("se_" + s.random.String(idLength, idAlphabet))
}
