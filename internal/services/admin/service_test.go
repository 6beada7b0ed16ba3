package admin

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

// Element tests

func (s *ServiceSuite) TestCreateElementSucceeds() {
	s.random.QueueString("aaaaaaaaaaaa")
	element, err := s.service.CreateElement(s.ctx, 2, 3, true, "rock.png")
	s.Require().NoError(err)

	s.Equal(model.ElementID("el_aaaaaaaaaaaa"), element.ID)
	s.Equal(2, element.Width)
	s.Equal(3, element.Height)
	s.True(element.Static)
	s.Equal("rock.png", element.ImageURL)
}

func (s *ServiceSuite) TestUpdateElementReplacesImage() {
	s.random.QueueString("aaaaaaaaaaaa")
	element, err := s.service.CreateElement(s.ctx, 1, 1, false, "old.png")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	updated, err := s.service.UpdateElement(s.ctx, element.ID, "new.png")
	s.Require().NoError(err)

	s.Equal("new.png", updated.ImageURL)
	s.True(updated.UpdatedAt.After(element.CreatedAt))
}

func (s *ServiceSuite) TestUpdateElementFailsForUnknown() {
	_, err := s.service.UpdateElement(s.ctx, "el_missing", "new.png")
	s.ErrorIs(err, model.ErrElementNotFound)
}

func (s *ServiceSuite) TestListElementsReturnsCatalog() {
	s.random.QueueString("aaaaaaaaaaaa", "bbbbbbbbbbbb")
	_, err := s.service.CreateElement(s.ctx, 1, 1, false, "one.png")
	s.Require().NoError(err)
	_, err = s.service.CreateElement(s.ctx, 1, 1, false, "two.png")
	s.Require().NoError(err)

	elements, err := s.service.ListElements(s.ctx)
	s.Require().NoError(err)
	s.Len(elements, 2)
}

// Avatar tests

func (s *ServiceSuite) TestCreateAvatarSucceeds() {
	s.random.QueueString("aaaaaaaaaaaa")
	avatar, err := s.service.CreateAvatar(s.ctx, "robot", "robot.png")
	s.Require().NoError(err)

	s.Equal(model.AvatarID("av_aaaaaaaaaaaa"), avatar.ID)
	s.Equal("robot", avatar.Name)
}

func (s *ServiceSuite) TestListAvatarsReturnsCatalog() {
	s.random.QueueString("aaaaaaaaaaaa")
	_, err := s.service.CreateAvatar(s.ctx, "robot", "robot.png")
	s.Require().NoError(err)

	avatars, err := s.service.ListAvatars(s.ctx)
	s.Require().NoError(err)
	s.Len(avatars, 1)
}

// Map tests

func (s *ServiceSuite) TestCreateMapSucceeds() {
	s.random.QueueString("eeeeeeeeeeee")
	element, err := s.service.CreateElement(s.ctx, 1, 1, true, "tree.png")
	s.Require().NoError(err)

	s.random.QueueString("mmmmmmmmmmmm")
	m, err := s.service.CreateMap(s.ctx, "forest", "forest.png", 30, 25, []model.MapElement{
		{ElementID: element.ID, X: 2, Y: 3},
	})
	s.Require().NoError(err)

	s.Equal(model.MapID("mp_mmmmmmmmmmmm"), m.ID)
	s.Equal(30, m.Width)
	s.Equal(25, m.Height)
	s.Len(m.DefaultElements, 1)
}

func (s *ServiceSuite) TestCreateMapRejectsBadDimensions() {
	_, err := s.service.CreateMap(s.ctx, "forest", "", 0, 25, nil)
	s.ErrorIs(err, model.ErrInvalidDimensions)
}

func (s *ServiceSuite) TestCreateMapFailsForUnknownElement() {
	_, err := s.service.CreateMap(s.ctx, "forest", "", 30, 25, []model.MapElement{
		{ElementID: "el_missing", X: 2, Y: 3},
	})
	s.ErrorIs(err, model.ErrElementNotFound)
}

func (s *ServiceSuite) TestCreateMapRejectsOutOfBoundsElement() {
	s.random.QueueString("eeeeeeeeeeee")
	element, err := s.service.CreateElement(s.ctx, 1, 1, true, "tree.png")
	s.Require().NoError(err)

	_, err = s.service.CreateMap(s.ctx, "forest", "", 30, 25, []model.MapElement{
		{ElementID: element.ID, X: 30, Y: 3},
	})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestListMapsReturnsCatalog() {
	s.random.QueueString("mmmmmmmmmmmm")
	_, err := s.service.CreateMap(s.ctx, "empty", "", 10, 10, nil)
	s.Require().NoError(err)

	maps, err := s.service.ListMaps(s.ctx)
	s.Require().NoError(err)
	s.Len(maps, 1)
}
