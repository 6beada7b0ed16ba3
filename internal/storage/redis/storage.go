package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) GetUsersByIDs(ctx context.Context, ids []model.UserID) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, usernameIndexKey(user.Username))
	_, err = pipe.Exec(ctx)
	return err
}

// Space operations

func (s *Storage) SaveSpace(ctx context.Context, space *model.Space) error {
	data, err := json.Marshal(space)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, spaceKey(space.ID), data, s.cfg.SpaceTTL)
	pipe.SAdd(ctx, creatorSpacesKey(space.CreatorID), string(space.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSpace(ctx context.Context, id model.SpaceID) (*model.Space, error) {
	data, err := s.client.Get(ctx, spaceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSpaceNotFound
		}
		return nil, err
	}

	var space model.Space
	if err := json.Unmarshal(data, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (s *Storage) DeleteSpace(ctx context.Context, id model.SpaceID) error {
	space, err := s.GetSpace(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSpaceNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, spaceKey(id))
	pipe.SRem(ctx, creatorSpacesKey(space.CreatorID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSpacesByCreator(ctx context.Context, creatorID model.UserID) ([]*model.Space, error) {
	ids, err := s.client.SMembers(ctx, creatorSpacesKey(creatorID)).Result()
	if err != nil {
		return nil, err
	}

	var spaces []*model.Space
	for _, id := range ids {
		space, err := s.GetSpace(ctx, model.SpaceID(id))
		if err != nil {
			if errors.Is(err, model.ErrSpaceNotFound) {
				// Space expired but its index entry did not; skip
				continue
			}
			return nil, err
		}
		spaces = append(spaces, space)
	}
	return spaces, nil
}

// Space element operations

func (s *Storage) SaveSpaceElement(ctx context.Context, se *model.SpaceElement) error {
	data, err := json.Marshal(se)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, spaceElementKey(se.ID), data, 0)
	pipe.SAdd(ctx, spaceElementsKey(se.SpaceID), string(se.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSpaceElement(ctx context.Context, id model.SpaceElementID) (*model.SpaceElement, error) {
	data, err := s.client.Get(ctx, spaceElementKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSpaceElementNotFound
		}
		return nil, err
	}

	var se model.SpaceElement
	if err := json.Unmarshal(data, &se); err != nil {
		return nil, err
	}
	return &se, nil
}

func (s *Storage) DeleteSpaceElement(ctx context.Context, id model.SpaceElementID) error {
	se, err := s.GetSpaceElement(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSpaceElementNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, spaceElementKey(id))
	pipe.SRem(ctx, spaceElementsKey(se.SpaceID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSpaceElements(ctx context.Context, spaceID model.SpaceID) ([]*model.SpaceElement, error) {
	ids, err := s.client.SMembers(ctx, spaceElementsKey(spaceID)).Result()
	if err != nil {
		return nil, err
	}

	var elements []*model.SpaceElement
	for _, id := range ids {
		se, err := s.GetSpaceElement(ctx, model.SpaceElementID(id))
		if err != nil {
			if errors.Is(err, model.ErrSpaceElementNotFound) {
				continue
			}
			return nil, err
		}
		elements = append(elements, se)
	}
	return elements, nil
}

func (s *Storage) DeleteSpaceElementsForSpace(ctx context.Context, spaceID model.SpaceID) error {
	ids, err := s.client.SMembers(ctx, spaceElementsKey(spaceID)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, spaceElementKey(model.SpaceElementID(id)))
	}
	pipe.Del(ctx, spaceElementsKey(spaceID))
	_, err = pipe.Exec(ctx)
	return err
}

// Element catalog operations

func (s *Storage) SaveElement(ctx context.Context, element *model.Element) error {
	data, err := json.Marshal(element)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, elementKey(element.ID), data, 0)
	pipe.SAdd(ctx, elementsKey(), string(element.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetElement(ctx context.Context, id model.ElementID) (*model.Element, error) {
	data, err := s.client.Get(ctx, elementKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrElementNotFound
		}
		return nil, err
	}

	var element model.Element
	if err := json.Unmarshal(data, &element); err != nil {
		return nil, err
	}
	return &element, nil
}

func (s *Storage) ListElements(ctx context.Context) ([]*model.Element, error) {
	ids, err := s.client.SMembers(ctx, elementsKey()).Result()
	if err != nil {
		return nil, err
	}

	elements := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		element, err := s.GetElement(ctx, model.ElementID(id))
		if err != nil {
			if errors.Is(err, model.ErrElementNotFound) {
				continue
			}
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

// Avatar catalog operations

func (s *Storage) SaveAvatar(ctx context.Context, avatar *model.Avatar) error {
	data, err := json.Marshal(avatar)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, avatarKey(avatar.ID), data, 0)
	pipe.SAdd(ctx, avatarsKey(), string(avatar.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAvatar(ctx context.Context, id model.AvatarID) (*model.Avatar, error) {
	data, err := s.client.Get(ctx, avatarKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAvatarNotFound
		}
		return nil, err
	}

	var avatar model.Avatar
	if err := json.Unmarshal(data, &avatar); err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (s *Storage) ListAvatars(ctx context.Context) ([]*model.Avatar, error) {
	ids, err := s.client.SMembers(ctx, avatarsKey()).Result()
	if err != nil {
		return nil, err
	}

	avatars := make([]*model.Avatar, 0, len(ids))
	for _, id := range ids {
		avatar, err := s.GetAvatar(ctx, model.AvatarID(id))
		if err != nil {
			if errors.Is(err, model.ErrAvatarNotFound) {
				continue
			}
			return nil, err
		}
		avatars = append(avatars, avatar)
	}
	return avatars, nil
}

// Map catalog operations

func (s *Storage) SaveMap(ctx context.Context, m *model.GameMap) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, mapKey(m.ID), data, 0)
	pipe.SAdd(ctx, mapsKey(), string(m.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMap(ctx context.Context, id model.MapID) (*model.GameMap, error) {
	data, err := s.client.Get(ctx, mapKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMapNotFound
		}
		return nil, err
	}

	var m model.GameMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) ListMaps(ctx context.Context) ([]*model.GameMap, error) {
	ids, err := s.client.SMembers(ctx, mapsKey()).Result()
	if err != nil {
		return nil, err
	}

	maps := make([]*model.GameMap, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMap(ctx, model.MapID(id))
		if err != nil {
			if errors.Is(err, model.ErrMapNotFound) {
				continue
			}
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}
