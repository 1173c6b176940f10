package http

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/user"
)

// GET /api/admin/users?role=student
func ListUsersHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role")))
		if role != "" && !user.ValidRole(role) {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
		list, err := users.List(r.Context(), role)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": list})
	}
}

type updateUserRoleReq struct {
	Role string `json:"role" validate:"required,oneof=student admin"`
}

// PATCH /api/admin/users/{userID}/role  { "role": "admin" }
func AdminUpdateUserRoleHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "userID")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		var req updateUserRoleReq
		if rerr := decodeValid(r, &req, "invalid role"); rerr != nil {
			rerr.write(w)
			return
		}

		u, err := users.SetRole(r.Context(), id, req.Role)
		switch {
		case errors.Is(err, user.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, user.ErrLastAdmin):
			writeError(w, http.StatusConflict, user.ErrLastAdmin.Error())
		case err != nil:
			serverError(w, r, err)
		default:
			writeJSON(w, http.StatusOK, map[string]any{"user": u})
		}
	}
}
