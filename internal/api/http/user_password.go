package http

import (
	"net/http"

	"github.com/pkg/errors"

	authmw "github.com/eduvate/eduvate-api/internal/auth/middleware"
	"github.com/eduvate/eduvate-api/internal/user"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

const changePasswordRequired = "old and new password are required"

// POST /api/auth/change-password
func ChangePasswordHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := authmw.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req changePasswordReq
		if rerr := decodeValid(r, &req, changePasswordRequired); rerr != nil {
			rerr.write(w)
			return
		}

		u, err := users.GetByID(r.Context(), id)
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		if !u.CheckPassword(req.OldPassword) {
			writeError(w, http.StatusForbidden, "incorrect old password")
			return
		}
		err = users.SetPassword(r.Context(), id, req.NewPassword)
		if errors.Is(err, user.ErrPasswordTooLong) {
			passwordTooLong(w, "new_password", changePasswordRequired)
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
