package http

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/exam"
)

// GET /api/exams?type=engineering
func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListExams(r.Context(), exam.ListOpts{Type: r.URL.Query().Get("type")})
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exams": list})
	}
}

// GET /api/exams/{id}
func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid exam id")
			return
		}
		e, err := store.GetExam(r.Context(), id)
		if errors.Is(err, exam.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exam not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exam": e})
	}
}
