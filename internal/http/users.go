package http

import (
	"encoding/json"
	"net/http"

	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/httpx"
	"github.com/viewinvoices/server/pkg/slogx"
)

// UsersHandler handles the admin user management endpoints. Every route it
// serves runs behind requireAuth and requireAdmin.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /api/admin/users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.List(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, users)
}

// HandleGet handles GET /api/admin/users/{id}.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdate handles PUT /api/admin/users/{id}. Absent fields are left
// unchanged; unknown fields and a body with no known fields are rejected,
// so the set of mutable fields stays an explicit contract.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var upd service.UserUpdate
	if err := dec.Decode(&upd); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Update(ctx, r.PathValue("id"), upd)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /api/admin/users/{id}. Admins cannot delete
// their own account; that would strand the session mid-request and makes it
// too easy to lock everyone out.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	current, ok := userFromContext(ctx)
	if !ok {
		errUnauthenticated.WriteError(w)
		return
	}
	if current.ID == id {
		errSelfDelete.WriteError(w)
		return
	}

	if err := h.UserService.Delete(ctx, id); err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "user deleted"})
}
