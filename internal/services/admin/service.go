package admin

import (
	"context"
	"log/slog"

	"github.com/gridspace-io/gridspace/internal/dependencies/clock"
	"github.com/gridspace-io/gridspace/internal/dependencies/random"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage"
)

const idLength = 12

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service manages the element/avatar/map catalogs. All operations here
// sit behind the admin role; the catalogs are read-only for regular users.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new admin Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "admin")),
	}
}

// CreateElement adds a new placeable element to the catalog
func (s *Service) CreateElement(ctx context.Context, width, height int, static bool, imageURL string) (*model.Element, error) {
	now := s.clock.Now()
	element := &model.Element{
		ID:        model.ElementID("el_" + s.random.String(idLength, idAlphabet)),
		Width:     width,
		Height:    height,
		Static:    static,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveElement(ctx, element); err != nil {
		return nil, err
	}
	s.logger.Info("element created", slog.String("element_id", string(element.ID)))
	return element, nil
}

// UpdateElement replaces an element's image
func (s *Service) UpdateElement(ctx context.Context, id model.ElementID, imageURL string) (*model.Element, error) {
	element, err := s.storage.GetElement(ctx, id)
	if err != nil {
		return nil, err
	}
	element.ImageURL = imageURL
	element.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveElement(ctx, element); err != nil {
		return nil, err
	}
	return element, nil
}

// ListElements returns the element catalog
func (s *Service) ListElements(ctx context.Context) ([]*model.Element, error) {
	return s.storage.ListElements(ctx)
}

// CreateAvatar adds a new avatar to the catalog
func (s *Service) CreateAvatar(ctx context.Context, name, imageURL string) (*model.Avatar, error) {
	avatar := &model.Avatar{
		ID:        model.AvatarID("av_" + s.random.String(idLength, idAlphabet)),
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveAvatar(ctx, avatar); err != nil {
		return nil, err
	}
	s.logger.Info("avatar created", slog.String("avatar_id", string(avatar.ID)))
	return avatar, nil
}

// ListAvatars returns the avatar catalog
func (s *Service) ListAvatars(ctx context.Context) ([]*model.Avatar, error) {
	return s.storage.ListAvatars(ctx)
}

// CreateMap adds a new map template. Dimensions are "WxH"; every default
// element must reference an existing catalog element and lie in bounds.
func (s *Service) CreateMap(ctx context.Context, name, thumbnail string, width, height int, defaultElements []model.MapElement) (*model.GameMap, error) {
	if width <= 0 || height <= 0 {
		return nil, model.ErrInvalidDimensions
	}
	for _, me := range defaultElements {
		if _, err := s.storage.GetElement(ctx, me.ElementID); err != nil {
			return nil, err
		}
		if me.X < 0 || me.X >= width || me.Y < 0 || me.Y >= height {
			return nil, model.ErrInvalidPosition
		}
	}

	m := &model.GameMap{
		ID:              model.MapID("mp_" + s.random.String(idLength, idAlphabet)),
		Name:            name,
		Width:           width,
		Height:          height,
		Thumbnail:       thumbnail,
		DefaultElements: defaultElements,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.storage.SaveMap(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("map created", slog.String("map_id", string(m.ID)))
	return m, nil
}

// ListMaps returns the map catalog
func (s *Service) ListMaps(ctx context.Context) ([]*model.GameMap, error) {
	return s.storage.ListMaps(ctx)
}
