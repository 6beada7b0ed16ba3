package space

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gridspace-io/gridspace/internal/dependencies/mocks"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage/memory"
	"github.com/gridspace-io/gridspace/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) createSpace(creator model.UserID, name, dimensions string, id string) *model.Space {
	s.random.QueueString(id)
	space, err := s.service.CreateSpace(s.ctx, creator, name, dimensions, "")
	s.Require().NoError(err)
	return space
}

// ParseDimensions tests

func (s *ServiceSuite) TestParseDimensionsSucceeds() {
	width, height, err := ParseDimensions("20x15")
	s.Require().NoError(err)
	s.Equal(20, width)
	s.Equal(15, height)
}

func (s *ServiceSuite) TestParseDimensionsRejectsBadInput() {
	for _, input := range []string{"", "20", "x", "20x", "x15", "0x15", "20x0", "-1x15", "ax15", "20xb"} {
		_, _, err := ParseDimensions(input)
		s.ErrorIs(err, model.ErrInvalidDimensions, "input %q", input)
	}
}

// CreateSpace tests

func (s *ServiceSuite) TestCreateSpaceUsesDefaultGrid() {
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	s.Equal(model.SpaceID("sp_aaaaaaaaaaaa"), space.ID)
	s.Equal(model.DefaultGridWidth, space.Width)
	s.Equal(model.DefaultGridHeight, space.Height)
	s.Equal(model.UserID("u_alice"), space.CreatorID)
}

func (s *ServiceSuite) TestCreateSpaceParsesDimensions() {
	space := s.createSpace("u_alice", "my space", "20x15", "aaaaaaaaaaaa")

	s.Equal(20, space.Width)
	s.Equal(15, space.Height)
}

func (s *ServiceSuite) TestCreateSpaceRejectsBadDimensions() {
	_, err := s.service.CreateSpace(s.ctx, "u_alice", "my space", "0x15", "")
	s.ErrorIs(err, model.ErrInvalidDimensions)
}

func (s *ServiceSuite) TestCreateSpacePersists() {
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	stored, err := s.storage.GetSpace(s.ctx, space.ID)
	s.Require().NoError(err)
	s.Equal("my space", stored.Name)
}

func (s *ServiceSuite) TestCreateSpaceFromMapCopiesTemplate() {
	element := &model.Element{ID: "el_tree", Width: 1, Height: 1, ImageURL: "tree.png"}
	s.Require().NoError(s.storage.SaveElement(s.ctx, element))

	m := &model.GameMap{
		ID:        "mp_forest",
		Name:      "forest",
		Width:     30,
		Height:    25,
		Thumbnail: "forest.png",
		DefaultElements: []model.MapElement{
			{ElementID: "el_tree", X: 2, Y: 3},
			{ElementID: "el_tree", X: 10, Y: 11},
		},
	}
	s.Require().NoError(s.storage.SaveMap(s.ctx, m))

	s.random.QueueString("aaaaaaaaaaaa", "ssssssssssss", "tttttttttttt")
	space, err := s.service.CreateSpace(s.ctx, "u_alice", "my forest", "", "mp_forest")
	s.Require().NoError(err)

	// Map dimensions and thumbnail win
	s.Equal(30, space.Width)
	s.Equal(25, space.Height)
	s.Equal("forest.png", space.Thumbnail)
	s.Equal(model.MapID("mp_forest"), space.MapID)

	// Default elements were copied into the space
	elements, err := s.storage.ListSpaceElements(s.ctx, space.ID)
	s.Require().NoError(err)
	s.Len(elements, 2)
}

func (s *ServiceSuite) TestCreateSpaceFailsForUnknownMap() {
	s.random.QueueString("aaaaaaaaaaaa")
	_, err := s.service.CreateSpace(s.ctx, "u_alice", "my space", "", "mp_missing")
	s.ErrorIs(err, model.ErrMapNotFound)
}

// GetSpace tests

func (s *ServiceSuite) TestGetSpaceFailsForUnknown() {
	_, err := s.service.GetSpace(s.ctx, "sp_missing")
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

// ListSpaces tests

func (s *ServiceSuite) TestListSpacesFiltersByCreator() {
	s.createSpace("u_alice", "one", "", "aaaaaaaaaaaa")
	s.createSpace("u_alice", "two", "", "bbbbbbbbbbbb")
	s.createSpace("u_bob", "other", "", "cccccccccccc")

	spaces, err := s.service.ListSpaces(s.ctx, "u_alice")
	s.Require().NoError(err)
	s.Len(spaces, 2)
}

// DeleteSpace tests

func (s *ServiceSuite) TestDeleteSpaceByCreatorSucceeds() {
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	s.Require().NoError(s.service.DeleteSpace(s.ctx, space.ID, "u_alice"))

	_, err := s.storage.GetSpace(s.ctx, space.ID)
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

func (s *ServiceSuite) TestDeleteSpaceRemovesPlacedElements() {
	element := &model.Element{ID: "el_tree", Width: 1, Height: 1}
	s.Require().NoError(s.storage.SaveElement(s.ctx, element))

	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")
	s.random.QueueString("ssssssssssss")
	_, err := s.service.AddElement(s.ctx, space.ID, "el_tree", 1, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteSpace(s.ctx, space.ID, "u_alice"))

	elements, err := s.storage.ListSpaceElements(s.ctx, space.ID)
	s.Require().NoError(err)
	s.Empty(elements)
}

func (s *ServiceSuite) TestDeleteSpaceByNonCreatorFails() {
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	err := s.service.DeleteSpace(s.ctx, space.ID, "u_bob")
	s.ErrorIs(err, model.ErrNotSpaceCreator)

	_, getErr := s.storage.GetSpace(s.ctx, space.ID)
	s.NoError(getErr)
}

func (s *ServiceSuite) TestDeleteSpaceFailsForUnknown() {
	err := s.service.DeleteSpace(s.ctx, "sp_missing", "u_alice")
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

// AddElement tests

func (s *ServiceSuite) TestAddElementSucceeds() {
	element := &model.Element{ID: "el_tree", Width: 1, Height: 1}
	s.Require().NoError(s.storage.SaveElement(s.ctx, element))
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	s.random.QueueString("ssssssssssss")
	se, err := s.service.AddElement(s.ctx, space.ID, "el_tree", 3, 4)
	s.Require().NoError(err)

	s.Equal(model.SpaceElementID("se_ssssssssssss"), se.ID)
	s.Equal(3, se.X)
	s.Equal(4, se.Y)
}

func (s *ServiceSuite) TestAddElementRejectsOutOfBounds() {
	element := &model.Element{ID: "el_tree", Width: 1, Height: 1}
	s.Require().NoError(s.storage.SaveElement(s.ctx, element))
	space := s.createSpace("u_alice", "my space", "10x10", "aaaaaaaaaaaa")

	_, err := s.service.AddElement(s.ctx, space.ID, "el_tree", 10, 5)
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestAddElementFailsForUnknownElement() {
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	_, err := s.service.AddElement(s.ctx, space.ID, "el_missing", 1, 1)
	s.ErrorIs(err, model.ErrElementNotFound)
}

func (s *ServiceSuite) TestAddElementFailsForUnknownSpace() {
	_, err := s.service.AddElement(s.ctx, "sp_missing", "el_tree", 1, 1)
	s.ErrorIs(err, model.ErrSpaceNotFound)
}

// RemoveElement tests

func (s *ServiceSuite) TestRemoveElementSucceeds() {
	element := &model.Element{ID: "el_tree", Width: 1, Height: 1}
	s.Require().NoError(s.storage.SaveElement(s.ctx, element))
	space := s.createSpace("u_alice", "my space", "", "aaaaaaaaaaaa")

	s.random.QueueString("ssssssssssss")
	se, err := s.service.AddElement(s.ctx, space.ID, "el_tree", 1, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveElement(s.ctx, se.ID))

	elements, err := s.storage.ListSpaceElements(s.ctx, space.ID)
	s.Require().NoError(err)
	s.Empty(elements)
}

func (s *ServiceSuite) TestRemoveElementFailsForUnknown() {
	err := s.service.RemoveElement(s.ctx, "se_missing")
	s.ErrorIs(err, model.ErrSpaceElementNotFound)
}
