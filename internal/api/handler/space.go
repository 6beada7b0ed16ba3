package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridspace-io/gridspace/internal/api/apierr"
	"github.com/gridspace-io/gridspace/internal/api/middleware"
	"github.com/gridspace-io/gridspace/internal/api/request"
	"github.com/gridspace-io/gridspace/internal/api/response"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/services/space"
)

// SpaceHandler handles space directory endpoints
type SpaceHandler struct {
	spaceService *space.Service
}

// NewSpaceHandler creates a new space handler
func NewSpaceHandler(spaceService *space.Service) *SpaceHandler {
	return &SpaceHandler{
		spaceService: spaceService,
	}
}

// Create handles POST /api/v1/space
func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}
	if req.Dimensions == "" && req.MapID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("dimensions or map_id is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	sp, err := h.spaceService.CreateSpace(r.Context(), user.ID, req.Name, req.Dimensions, model.MapID(req.MapID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SpaceFromModel(sp))
}

// ListMine handles GET /api/v1/space/all
func (h *SpaceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	spaces, err := h.spaceService.ListSpaces(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result := make([]response.Space, 0, len(spaces))
	for _, sp := range spaces {
		result = append(result, response.SpaceFromModel(sp))
	}

	response.JSON(w, http.StatusOK, response.SpaceList{Spaces: result})
}

// Get handles GET /api/v1/space/{id}
func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SpaceID(mux.Vars(r)["id"])

	sp, err := h.spaceService.GetSpace(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	elements, err := h.spaceService.GetSpaceElements(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	detail := response.SpaceDetail{Space: response.SpaceFromModel(sp)}
	detail.Elements = make([]response.SpaceElement, 0, len(elements))
	for _, se := range elements {
		detail.Elements = append(detail.Elements, response.SpaceElementFromModel(se))
	}

	response.JSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /api/v1/space/{id}
func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.SpaceID(mux.Vars(r)["id"])
	user := middleware.MustGetUser(r.Context())

	if err := h.spaceService.DeleteSpace(r.Context(), id, user.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddElement handles POST /api/v1/space/element
func (h *SpaceHandler) AddElement(w http.ResponseWriter, r *http.Request) {
	var req request.AddSpaceElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SpaceID == "" || req.ElementID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("space_id and element_id are required"))
		return
	}

	se, err := h.spaceService.AddElement(r.Context(), model.SpaceID(req.SpaceID), model.ElementID(req.ElementID), req.X, req.Y)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SpaceElementFromModel(se))
}

// DeleteElement handles DELETE /api/v1/space/element
func (h *SpaceHandler) DeleteElement(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteSpaceElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("id is required"))
		return
	}

	if err := h.spaceService.RemoveElement(r.Context(), model.SpaceElementID(req.ID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
