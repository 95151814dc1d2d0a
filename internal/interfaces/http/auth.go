package http

import (
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/domain/user"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/middleware"
)

// CookieConfig controls the access-token cookie set for browser clients.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	userService *user.Service
	cookie      CookieConfig
}

func NewAuthHandler(userService *user.Service, cookie CookieConfig) *AuthHandler {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = auth.DefaultAccessTTL
	}
	return &AuthHandler{userService: userService, cookie: cookie}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRegister creates an account and opens its first session.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req user.RegisterParams
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.userService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "user registered", "user_id", result.User.ID)
	h.setAccessCookie(w, result.Tokens.AccessToken)
	writeJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setAccessCookie(w, result.Tokens.AccessToken)
	writeJSON(w, http.StatusOK, result)
}

// HandleRefresh rotates the session and returns the new pair.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.userService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setAccessCookie(w, pair.AccessToken)
	writeJSON(w, http.StatusOK, map[string]auth.TokenPair{"tokens": pair})
}

// HandleLogout always succeeds; an unreadable body just skips the store update.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req RefreshRequest
	if err := decodeJSON(w, r, &req); err == nil {
		h.userService.Logout(r.Context(), req.RefreshToken)
	}

	h.clearAccessCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleChangePassword replaces the caller's password and hands back a fresh pair.
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req user.ChangePasswordParams
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.userService.ChangePassword(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setAccessCookie(w, pair.AccessToken)
	writeJSON(w, http.StatusOK, map[string]auth.TokenPair{"tokens": pair})
}

func (h *AuthHandler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
