package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/httpx"
	"github.com/viewinvoices/server/pkg/slogx"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(ctx,
		strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Email),
		req.Password,
	)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin handles POST /api/auth/login. The response follows the OAuth2
// bearer token shape so standard clients can consume it directly.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	token, err := h.AuthService.Login(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// HandleMe handles GET /api/auth/me. Runs behind requireAuth, which has
// already resolved the token to a live user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errUnauthenticated.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user)
}
