package api

import (
	"encoding/json"

	"net/http"

	"membox/backend/internal/interfaces"
)

// UserHandler handles HTTP requests for the user identity store.
type UserHandler struct {
	service interfaces.UserService
}

func NewUserHandler(svc interfaces.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// LoginRequest carries the self-asserted display name.
type LoginRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64" example:"Alice"`
}

// SwitchUserRequest selects an existing user as the acting one.
type SwitchUserRequest struct {
	ID string `json:"id" validate:"required" example:"alice"`
}

// HandleLogin godoc
// @Summary      Log in by name
// @Description  Resolves a display name to a user (creating it on first login) and sets the acting-user cookie.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Display name"
// @Success      200  {object}  model.User
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/users/login [post]
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Name)
	if err != nil {
		respondWithError(w, err)
		return
	}

	setUserCookie(w, user.ID)
	respondWithJSON(w, http.StatusOK, user)
}

// HandleSwitchUser godoc
// @Summary      Switch the acting user
// @Description  Points the acting-user cookie at an existing user.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        switchRequest  body  SwitchUserRequest  true  "User id"
// @Success      200  {object}  model.User
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/users/switch [post]
func (h *UserHandler) HandleSwitchUser(w http.ResponseWriter, r *http.Request) {
	var req SwitchUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), req.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	setUserCookie(w, user.ID)
	respondWithJSON(w, http.StatusOK, user)
}

// HandleLogout godoc
// @Summary      Log out
// @Description  Clears the acting-user cookie. Users and their sessions are retained.
// @Tags         Users
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/users/logout [post]
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearUserCookie(w)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {array}  model.User
// @Router       /v1/users [get]
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// HandleCurrentUser godoc
// @Summary      Get the acting user
// @Tags         Users
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, UserFromContext(r.Context()))
}

// decodeAndValidate decodes a JSON body into dst and runs tag validation.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return invalidBodyError(err)
	}
	return validateRequest(dst)
}
