package http

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	authmw "github.com/eduvate/eduvate-api/internal/auth/middleware"
	"github.com/eduvate/eduvate-api/internal/user"
)

type credentials struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,max=72"`
	Name     *string `json:"name,omitempty"`
}

type authResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    user.User `json:"user"`
}

const credentialsRequired = "Email and password are required"

// POST /api/auth/signup  { "email": "...", "password": "...", "name": "..." }
func SignupHandler(users user.Store, a *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if rerr := decodeValid(r, &req, credentialsRequired); rerr != nil {
			rerr.write(w)
			return
		}
		if req.Name != nil {
			if n := strings.TrimSpace(*req.Name); n != "" {
				req.Name = &n
			} else {
				req.Name = nil
			}
		}

		u, err := users.Create(r.Context(), req.Email, req.Password, req.Name, user.RoleStudent)
		if errors.Is(err, user.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		if errors.Is(err, user.ErrPasswordTooLong) {
			passwordTooLong(w, "password", credentialsRequired)
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Email, u.Role)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, authResponse{Message: "User created successfully", Token: tok, User: u})
	}
}

// POST /api/auth/signin  { "email": "...", "password": "..." }
func SigninHandler(users user.Store, a *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if rerr := decodeValid(r, &req, credentialsRequired); rerr != nil {
			rerr.write(w)
			return
		}

		u, err := users.GetByEmail(r.Context(), req.Email)
		if errors.Is(err, user.ErrNotFound) || (err == nil && !u.CheckPassword(req.Password)) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Email, u.Role)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", Token: tok, User: u})
	}
}

// GET /api/auth/profile
func ProfileHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := authmw.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
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
		writeJSON(w, http.StatusOK, map[string]any{"user": u})
	}
}
