package handler

import (
	"net/http"

	"hackadmin/internal/service"
	"hackadmin/pkg/logger"
)

// AuthHandler handles login and session requests
type AuthHandler struct {
	base
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{base: base{logger: log}, auth: auth}
}

// LoginRequest is the body of POST /api/console/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/console/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	msg := res.Message
	if msg == "" {
		msg = "Login successful"
	}
	h.respondMessage(w, http.StatusOK, msg, res)
}

// Me handles GET /api/console/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondData(w, sess, "")
}

// Logout handles POST /api/console/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	closed := h.auth.Logout(sess)
	h.respondMessage(w, http.StatusOK, "Logged out", map[string]int{"closedPages": closed})
}
