package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/eduvate/eduvate-api/internal/auth/middleware"
	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/exam"
	"github.com/eduvate/eduvate-api/internal/hostel"
	"github.com/eduvate/eduvate-api/internal/placement"
	"github.com/eduvate/eduvate-api/internal/rbac"
	"github.com/eduvate/eduvate-api/internal/scholarship"
	"github.com/eduvate/eduvate-api/internal/storage"
	"github.com/eduvate/eduvate-api/internal/user"
)

// Deps are the collaborators the API handlers need.
type Deps struct {
	Auth         *authmw.AuthService
	Users        user.Store
	Colleges     *college.Service
	Exams        exam.Store
	Scholarships scholarship.Store
	Hostels      hostel.Store
	Placements   placement.Store
	Uploads      storage.BlobStore
	DB           Pinger
}

// Mount registers the health endpoints and everything under /api.
func Mount(r chi.Router, d Deps) {
	r.Get("/health", HealthHandler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", ReadyHandler(d.DB))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/signup", SignupHandler(d.Users, d.Auth))
			ar.Post("/signin", SigninHandler(d.Users, d.Auth))
			ar.With(authmw.JWTMiddleware(d.Auth), rbac.Require(rbac.PermProfileView)).
				Get("/profile", ProfileHandler(d.Users))
			ar.With(authmw.JWTMiddleware(d.Auth), rbac.Require(rbac.PermPasswordChange)).
				Post("/change-password", ChangePasswordHandler(d.Users))
		})

		api.Route("/colleges", func(cr chi.Router) {
			cr.Get("/", ListCollegesHandler(d.Colleges.Store()))
			cr.Post("/predict", PredictHandler(d.Colleges))
			cr.Post("/predict/export", ExportPredictionHandler(d.Colleges))
			cr.Get("/{id}", GetCollegeHandler(d.Colleges))
		})

		api.Get("/exams", ListExamsHandler(d.Exams))
		api.Get("/exams/{id}", GetExamHandler(d.Exams))
		api.Get("/scholarships", ListScholarshipsHandler(d.Scholarships))
		api.Get("/scholarships/{id}", GetScholarshipHandler(d.Scholarships))
		api.Get("/hostels", ListHostelsHandler(d.Hostels))
		api.Get("/hostels/{id}", GetHostelHandler(d.Hostels))
		api.Get("/placements/stats", PlacementStatsHandler(d.Placements))
		api.Get("/placements/college/{collegeID}", CollegePlacementsHandler(d.Placements))

		// Admin: JWT, then the role stored for the account, then RBAC.
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(authmw.JWTMiddleware(d.Auth), authmw.AttachRoleFromDB(d.Users))

			ar.With(rbac.Require(rbac.PermCutoffWrite)).Post("/cutoffs", AddCutoffHandler(d.Colleges))
			ar.With(rbac.Require(rbac.PermCutoffWrite)).Post("/cutoffs/import", ImportCutoffsHandler(d.Colleges, d.Uploads))
			ar.With(rbac.Require(rbac.PermUploadRead)).Route("/uploads", func(ur chi.Router) {
				MountUploads(ur, d.Uploads)
			})

			ar.With(rbac.Require(rbac.PermUsersList)).Get("/users", ListUsersHandler(d.Users))
			ar.With(rbac.Require(rbac.PermUsersUpdateRole)).Patch("/users/{userID}/role", AdminUpdateUserRoleHandler(d.Users))
		})
	})
}
