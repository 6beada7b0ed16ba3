package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gridspace-io/gridspace/internal/api/apierr"
	"github.com/gridspace-io/gridspace/internal/api/request"
	"github.com/gridspace-io/gridspace/internal/api/response"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/services/auth"
)

// AuthHandler handles signup and signin
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles POST /api/v1/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}
	role := model.Role(req.Type)
	if role == "" {
		role = model.RoleUser
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Password, role)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SignupResponse{UserID: string(user.ID)})
}

// Signin handles POST /api/v1/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req request.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	token, err := h.authService.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SigninResponse{Token: token})
}
