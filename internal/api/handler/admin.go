package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridspace-io/gridspace/internal/api/apierr"
	"github.com/gridspace-io/gridspace/internal/api/request"
	"github.com/gridspace-io/gridspace/internal/api/response"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/services/admin"
	"github.com/gridspace-io/gridspace/internal/services/space"
)

// AdminHandler handles element/avatar/map catalog administration
type AdminHandler struct {
	adminService *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// CreateElement handles POST /api/v1/admin/element
func (h *AdminHandler) CreateElement(w http.ResponseWriter, r *http.Request) {
	var req request.CreateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("width and height must be positive"))
		return
	}
	if req.ImageURL == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("image_url is required"))
		return
	}

	element, err := h.adminService.CreateElement(r.Context(), req.Width, req.Height, req.Static, req.ImageURL)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ElementFromModel(element))
}

// UpdateElement handles PUT /api/v1/admin/element/{id}
func (h *AdminHandler) UpdateElement(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ImageURL == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("image_url is required"))
		return
	}

	id := model.ElementID(mux.Vars(r)["id"])
	element, err := h.adminService.UpdateElement(r.Context(), id, req.ImageURL)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ElementFromModel(element))
}

// CreateAvatar handles POST /api/v1/admin/avatar
func (h *AdminHandler) CreateAvatar(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	avatar, err := h.adminService.CreateAvatar(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AvatarFromModel(avatar))
}

// CreateMap handles POST /api/v1/admin/map
func (h *AdminHandler) CreateMap(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	width, height, err := space.ParseDimensions(req.Dimensions)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	elements := make([]model.MapElement, 0, len(req.DefaultElements))
	for _, me := range req.DefaultElements {
		elements = append(elements, model.MapElement{
			ElementID: model.ElementID(me.ElementID),
			X:         me.X,
			Y:         me.Y,
		})
	}

	m, err := h.adminService.CreateMap(r.Context(), req.Name, req.Thumbnail, width, height, elements)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MapFromModel(m))
}
