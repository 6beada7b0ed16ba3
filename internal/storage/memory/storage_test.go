package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gridspace-io/gridspace/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u_1",
		Username:  "alice",
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}

	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "u_missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: "u_1", Username: "alice"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUsersByIDsSkipsUnknown() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", Username: "alice"}))
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", Username: "bob"}))

	users, err := s.storage.GetUsersByIDs(s.ctx, []model.UserID{"u_1", "u_missing", "u_2"})
	s.Require().NoError(err)
	s.Len(users, 2)
}

func (s *StorageSuite) TestDeleteUserClearsUsernameIndex() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", Username: "alice"}))

	s.Require().NoError(s.storage.DeleteUser(s.ctx, "u_1"))

	_, err := s.storage.GetUser(s.ctx, "u_1")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Space tests

func (s *StorageSuite) TestSaveAndGetSpace() {
	space := &model.Space{ID: "sp_1", Name: "test", Width: 16, Height: 12, CreatorID: "u_1"}

	s.Require().NoError(s.storage.SaveSpace(s.ctx, space))

	retrieved, err := s.storage.GetSpace(s.ctx, "sp_1")
	s.Require().NoError(err)
	s.Equal(16, retrieved.Width)
	s.Equal(12, retrieved.Height)
}

func (s *StorageSuite) TestGetSpaceNotFound() {
	_, err := s.storage.GetSpace(s.ctx, "sp_missing")
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

func (s *StorageSuite) TestDeleteSpace() {
	s.Require().NoError(s.storage.SaveSpace(s.ctx, &model.Space{ID: "sp_1"}))

	s.Require().NoError(s.storage.DeleteSpace(s.ctx, "sp_1"))

	_, err := s.storage.GetSpace(s.ctx, "sp_1")
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

func (s *StorageSuite) TestListSpacesByCreator() {
	s.Require().NoError(s.storage.SaveSpace(s.ctx, &model.Space{ID: "sp_1", CreatorID: "u_1"}))
	s.Require().NoError(s.storage.SaveSpace(s.ctx, &model.Space{ID: "sp_2", CreatorID: "u_1"}))
	s.Require().NoError(s.storage.SaveSpace(s.ctx, &model.Space{ID: "sp_3", CreatorID: "u_2"}))

	spaces, err := s.storage.ListSpacesByCreator(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Len(spaces, 2)
}

// Space element tests

func (s *StorageSuite) TestSaveAndGetSpaceElement() {
	se := &model.SpaceElement{ID: "se_1", SpaceID: "sp_1", ElementID: "el_1", X: 2, Y: 3}

	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, se))

	retrieved, err := s.storage.GetSpaceElement(s.ctx, "se_1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.X)
	s.Equal(3, retrieved.Y)
}

func (s *StorageSuite) TestGetSpaceElementNotFound() {
	_, err := s.storage.GetSpaceElement(s.ctx, "se_missing")
	s.ErrorIs(err, model.ErrSpaceElementNotFound)
}

func (s *StorageSuite) TestListSpaceElementsFiltersBySpace() {
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_1", SpaceID: "sp_1"}))
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_2", SpaceID: "sp_1"}))
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_3", SpaceID: "sp_2"}))

	elements, err := s.storage.ListSpaceElements(s.ctx, "sp_1")
	s.Require().NoError(err)
	s.Len(elements, 2)
}

func (s *StorageSuite) TestDeleteSpaceElementsForSpace() {
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_1", SpaceID: "sp_1"}))
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_2", SpaceID: "sp_1"}))
	s.Require().NoError(s.storage.SaveSpaceElement(s.ctx, &model.SpaceElement{ID: "se_3", SpaceID: "sp_2"}))

	s.Require().NoError(s.storage.DeleteSpaceElementsForSpace(s.ctx, "sp_1"))

	elements, err := s.storage.ListSpaceElements(s.ctx, "sp_1")
	s.Require().NoError(err)
	s.Empty(elements)

	// Other spaces untouched
	elements, err = s.storage.ListSpaceElements(s.ctx, "sp_2")
	s.Require().NoError(err)
	s.Len(elements, 1)
}

// Catalog tests

func (s *StorageSuite) TestSaveAndGetElement() {
	element := &model.Element{ID: "el_1", Width: 2, Height: 2, Static: true, ImageURL: "rock.png"}

	s.Require().NoError(s.storage.SaveElement(s.ctx, element))

	retrieved, err := s.storage.GetElement(s.ctx, "el_1")
	s.Require().NoError(err)
	s.True(retrieved.Static)

	_, err = s.storage.GetElement(s.ctx, "el_missing")
	s.ErrorIs(err, model.ErrElementNotFound)
}

func (s *StorageSuite) TestListElements() {
	s.Require().NoError(s.storage.SaveElement(s.ctx, &model.Element{ID: "el_1"}))
	s.Require().NoError(s.storage.SaveElement(s.ctx, &model.Element{ID: "el_2"}))

	elements, err := s.storage.ListElements(s.ctx)
	s.Require().NoError(err)
	s.Len(elements, 2)
}

func (s *StorageSuite) TestSaveAndGetAvatar() {
	avatar := &model.Avatar{ID: "av_1", Name: "robot"}

	s.Require().NoError(s.storage.SaveAvatar(s.ctx, avatar))

	retrieved, err := s.storage.GetAvatar(s.ctx, "av_1")
	s.Require().NoError(err)
	s.Equal("robot", retrieved.Name)

	_, err = s.storage.GetAvatar(s.ctx, "av_missing")
	s.ErrorIs(err, model.ErrAvatarNotFound)
}

func (s *StorageSuite) TestSaveAndGetMap() {
	m := &model.GameMap{
		ID: "mp_1", Name: "forest", Width: 30, Height: 25,
		DefaultElements: []model.MapElement{{ElementID: "el_1", X: 1, Y: 2}},
	}

	s.Require().NoError(s.storage.SaveMap(s.ctx, m))

	retrieved, err := s.storage.GetMap(s.ctx, "mp_1")
	s.Require().NoError(err)
	s.Len(retrieved.DefaultElements, 1)

	_, err = s.storage.GetMap(s.ctx, "mp_missing")
	s.ErrorIs(err, model.ErrMapNotFound)
}
