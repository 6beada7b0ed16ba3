package memory

import (
	"context"
	"sync"

	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	spaces        map[model.SpaceID]*model.Space
	spaceElements map[model.SpaceElementID]*model.SpaceElement
	elements      map[model.ElementID]*model.Element
	avatars       map[model.AvatarID]*model.Avatar
	maps          map[model.MapID]*model.GameMap
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		spaces:        make(map[model.SpaceID]*model.Space),
		spaceElements: make(map[model.SpaceElementID]*model.SpaceElement),
		elements:      make(map[model.ElementID]*model.Element),
		avatars:       make(map[model.AvatarID]*model.Avatar),
		maps:          make(map[model.MapID]*model.GameMap),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUsersByIDs(ctx context.Context, ids []model.UserID) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		delete(s.usernameIndex, user.Username)
	}
	delete(s.users, id)
	return nil
}

// Space operations

func (s *Storage) SaveSpace(ctx context.Context, space *model.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaces[space.ID] = space
	return nil
}

func (s *Storage) GetSpace(ctx context.Context, id model.SpaceID) (*model.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	space, ok := s.spaces[id]
	if !ok {
		return nil, model.ErrSpaceNotFound
	}
	return space, nil
}

func (s *Storage) DeleteSpace(ctx context.Context, id model.SpaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spaces, id)
	return nil
}

func (s *Storage) ListSpacesByCreator(ctx context.Context, creatorID model.UserID) ([]*model.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var spaces []*model.Space
	for _, space := range s.spaces {
		if space.CreatorID == creatorID {
			spaces = append(spaces, space)
		}
	}
	return spaces, nil
}

// Space element operations

func (s *Storage) SaveSpaceElement(ctx context.Context, se *model.SpaceElement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaceElements[se.ID] = se
	return nil
}

func (s *Storage) GetSpaceElement(ctx context.Context, id model.SpaceElementID) (*model.SpaceElement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	se, ok := s.spaceElements[id]
	if !ok {
		return nil, model.ErrSpaceElementNotFound
	}
	return se, nil
}

func (s *Storage) DeleteSpaceElement(ctx context.Context, id model.SpaceElementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spaceElements, id)
	return nil
}

func (s *Storage) ListSpaceElements(ctx context.Context, spaceID model.SpaceID) ([]*model.SpaceElement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var elements []*model.SpaceElement
	for _, se := range s.spaceElements {
		if se.SpaceID == spaceID {
			elements = append(elements, se)
		}
	}
	return elements, nil
}

func (s *Storage) DeleteSpaceElementsForSpace(ctx context.Context, spaceID model.SpaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, se := range s.spaceElements {
		if se.SpaceID == spaceID {
			delete(s.spaceElements, id)
		}
	}
	return nil
}

// Element catalog operations

func (s *Storage) SaveElement(ctx context.Context, element *model.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[element.ID] = element
	return nil
}

func (s *Storage) GetElement(ctx context.Context, id model.ElementID) (*model.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	element, ok := s.elements[id]
	if !ok {
		return nil, model.ErrElementNotFound
	}
	return element, nil
}

func (s *Storage) ListElements(ctx context.Context) ([]*model.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elements := make([]*model.Element, 0, len(s.elements))
	for _, element := range s.elements {
		elements = append(elements, element)
	}
	return elements, nil
}

// Avatar catalog operations

func (s *Storage) SaveAvatar(ctx context.Context, avatar *model.Avatar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.avatars[avatar.ID] = avatar
	return nil
}

func (s *Storage) GetAvatar(ctx context.Context, id model.AvatarID) (*model.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	avatar, ok := s.avatars[id]
	if !ok {
		return nil, model.ErrAvatarNotFound
	}
	return avatar, nil
}

func (s *Storage) ListAvatars(ctx context.Context) ([]*model.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	avatars := make([]*model.Avatar, 0, len(s.avatars))
	for _, avatar := range s.avatars {
		avatars = append(avatars, avatar)
	}
	return avatars, nil
}

// Map catalog operations

func (s *Storage) SaveMap(ctx context.Context, m *model.GameMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[m.ID] = m
	return nil
}

func (s *Storage) GetMap(ctx context.Context, id model.MapID) (*model.GameMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[id]
	if !ok {
		return nil, model.ErrMapNotFound
	}
	return m, nil
}

func (s *Storage) ListMaps(ctx context.Context) ([]*model.GameMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	maps := make([]*model.GameMap, 0, len(s.maps))
	for _, m := range s.maps {
		maps = append(maps, m)
	}
	return maps, nil
}
