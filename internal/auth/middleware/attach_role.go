package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/rbac"
	"github.com/eduvate/eduvate-api/internal/user"
)

// RoleLookup is the part of the user store needed to resolve roles.
type RoleLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// AttachRoleFromDB replaces the role claim with the role stored for the
// subject, so promotions and demotions apply before the token expires.
// Must run after JWTMiddleware.
func AttachRoleFromDB(users RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, ok := UserIDFromContext(ctx)
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}

			u, err := users.GetByID(ctx, id)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, u.Role)))
			case errors.Is(err, user.ErrNotFound):
				writeError(w, http.StatusUnauthorized, "user no longer exists")
			default:
				log.Printf("auth: role lookup for user %d: %v", id, err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		})
	}
}
