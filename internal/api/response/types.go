package response

import (
	"github.com/gridspace-io/gridspace/internal/model"
)

// User represents a user in API responses
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	AvatarID string `json:"avatar_id,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Role:     string(u.Role),
		AvatarID: string(u.AvatarID),
	}
}

// SignupResponse is the response for POST /signup
type SignupResponse struct {
	UserID string `json:"user_id"`
}

// SigninResponse is the response for POST /signin
type SigninResponse struct {
	Token string `json:"token"`
}

// Space represents a space in API responses
type Space struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// SpaceFromModel converts a model.Space
func SpaceFromModel(s *model.Space) Space {
	return Space{
		ID:         string(s.ID),
		Name:       s.Name,
		Dimensions: dimensionString(s.Width, s.Height),
		Thumbnail:  s.Thumbnail,
	}
}

// SpaceElement represents a placed element in API responses
type SpaceElement struct {
	ID        string `json:"id"`
	ElementID string `json:"element_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// SpaceElementFromModel converts a model.SpaceElement
func SpaceElementFromModel(se *model.SpaceElement) SpaceElement {
	return SpaceElement{
		ID:        string(se.ID),
		ElementID: string(se.ElementID),
		X:         se.X,
		Y:         se.Y,
	}
}

// SpaceDetail is the response for GET /space/{id}
type SpaceDetail struct {
	Space
	Elements []SpaceElement `json:"elements"`
}

// SpaceList is the response for GET /space/all
type SpaceList struct {
	Spaces []Space `json:"spaces"`
}

// Element represents a catalog element in API responses
type Element struct {
	ID       string `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Static   bool   `json:"static"`
	ImageURL string `json:"image_url"`
}

// ElementFromModel converts a model.Element
func ElementFromModel(e *model.Element) Element {
	return Element{
		ID:       string(e.ID),
		Width:    e.Width,
		Height:   e.Height,
		Static:   e.Static,
		ImageURL: e.ImageURL,
	}
}

// ElementList is the response for GET /elements
type ElementList struct {
	Elements []Element `json:"elements"`
}

// Avatar represents a catalog avatar in API responses
type Avatar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// AvatarFromModel converts a model.Avatar
func AvatarFromModel(a *model.Avatar) Avatar {
	return Avatar{
		ID:       string(a.ID),
		Name:     a.Name,
		ImageURL: a.ImageURL,
	}
}

// AvatarList is the response for GET /avatars
type AvatarList struct {
	Avatars []Avatar `json:"avatars"`
}

// Map represents a catalog map in API responses
type Map struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// MapFromModel converts a model.GameMap
func MapFromModel(m *model.GameMap) Map {
	return Map{
		ID:         string(m.ID),
		Name:       m.Name,
		Dimensions: dimensionString(m.Width, m.Height),
		Thumbnail:  m.Thumbnail,
	}
}

// UserMetadata is one entry in the bulk metadata response
type UserMetadata struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	AvatarID string `json:"avatar_id,omitempty"`
}

// BulkMetadataResponse is the response for GET /user/metadata/bulk
type BulkMetadataResponse struct {
	Users []UserMetadata `json:"users"`
}
