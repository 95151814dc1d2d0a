package http

import (
	"net/http"

	"fintrack/internal/domain/user"
)

type UserHandler struct {
	userService *user.Service
}

func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleMe handles both GET and PUT requests for the current user
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetMe(w, r, userID)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdateMe(w, r, userID)
	default:
		methodNotAllowed(w, "GET, PUT, PATCH")
	}
}

func (h *UserHandler) handleGetMe(w http.ResponseWriter, r *http.Request, userID string) {
	u, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request, userID string) {
	var params user.UpdateUserParams
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.userService.UpdateProfile(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
