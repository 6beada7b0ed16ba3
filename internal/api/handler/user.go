package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gridspace-io/gridspace/internal/api/apierr"
	"github.com/gridspace-io/gridspace/internal/api/middleware"
	"github.com/gridspace-io/gridspace/internal/api/request"
	"github.com/gridspace-io/gridspace/internal/api/response"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/services/admin"
	"github.com/gridspace-io/gridspace/internal/services/auth"
)

// UserHandler handles user metadata endpoints
type UserHandler struct {
	authService  *auth.Service
	adminService *admin.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, adminService *admin.Service) *UserHandler {
	return &UserHandler{
		authService:  authService,
		adminService: adminService,
	}
}

// GetMe handles GET /api/v1/user/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// UpdateMetadata handles POST /api/v1/user/metadata
func (h *UserHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.AvatarID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("avatar_id is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.authService.SetAvatar(r.Context(), user.ID, model.AvatarID(req.AvatarID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// BulkMetadata handles GET /api/v1/user/metadata/bulk?ids=a,b,c
func (h *UserHandler) BulkMetadata(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("ids query parameter is required"))
		return
	}

	var ids []model.UserID
	for _, id := range strings.Split(idsParam, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, model.UserID(id))
		}
	}

	users, err := h.authService.GetUsersByIDs(r.Context(), ids)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result := make([]response.UserMetadata, 0, len(users))
	for _, u := range users {
		result = append(result, response.UserMetadata{
			UserID:   string(u.ID),
			Username: u.Username,
			AvatarID: string(u.AvatarID),
		})
	}

	response.JSON(w, http.StatusOK, response.BulkMetadataResponse{Users: result})
}

// ListAvatars handles GET /api/v1/avatars
func (h *UserHandler) ListAvatars(w http.ResponseWriter, r *http.Request) {
	avatars, err := h.adminService.ListAvatars(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result := make([]response.Avatar, 0, len(avatars))
	for _, a := range avatars {
		result = append(result, response.AvatarFromModel(a))
	}

	response.JSON(w, http.StatusOK, response.AvatarList{Avatars: result})
}

// ListElements handles GET /api/v1/elements
func (h *UserHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	elements, err := h.adminService.ListElements(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result := make([]response.Element, 0, len(elements))
	for _, e := range elements {
		result = append(result, response.ElementFromModel(e))
	}

	response.JSON(w, http.StatusOK, response.ElementList{Elements: result})
}
