package http

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/scholarship"
)

// GET /api/scholarships?category=&examType=
func ListScholarshipsHandler(store scholarship.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.List(r.Context(), scholarship.ListOpts{
			Category: q.Get("category"),
			ExamType: q.Get("examType"),
		})
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"scholarships": list})
	}
}

// GET /api/scholarships/{id}
func GetScholarshipHandler(store scholarship.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid scholarship id")
			return
		}
		s, err := store.Get(r.Context(), id)
		if errors.Is(err, scholarship.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Scholarship not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"scholarship": s})
	}
}
