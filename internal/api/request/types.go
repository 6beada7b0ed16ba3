package request

// SignupRequest is the body for POST /signup
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Type     string `json:"type"` // "user" or "admin"
}

// SigninRequest is the body for POST /signin
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateMetadataRequest is the body for POST /user/metadata
type UpdateMetadataRequest struct {
	AvatarID string `json:"avatar_id"`
}

// CreateSpaceRequest is the body for POST /space
type CreateSpaceRequest struct {
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"` // "WxH", optional when map_id is set
	MapID      string `json:"map_id,omitempty"`
}

// AddSpaceElementRequest is the body for POST /space/element
type AddSpaceElementRequest struct {
	SpaceID   string `json:"space_id"`
	ElementID string `json:"element_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// DeleteSpaceElementRequest is the body for DELETE /space/element
type DeleteSpaceElementRequest struct {
	ID string `json:"id"`
}

// CreateElementRequest is the body for POST /admin/element
type CreateElementRequest struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Static   bool   `json:"static"`
	ImageURL string `json:"image_url"`
}

// UpdateElementRequest is the body for PUT /admin/element/{id}
type UpdateElementRequest struct {
	ImageURL string `json:"image_url"`
}

// CreateAvatarRequest is the body for POST /admin/avatar
type CreateAvatarRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// MapElement is one default element placement in a map
type MapElement struct {
	ElementID string `json:"element_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// CreateMapRequest is the body for POST /admin/map
type CreateMapRequest struct {
	Name            string       `json:"name"`
	Thumbnail       string       `json:"thumbnail"`
	Dimensions      string       `json:"dimensions"` // "WxH"
	DefaultElements []MapElement `json:"default_elements"`
}
