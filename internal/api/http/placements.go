package http

import (
	"net/http"

	"github.com/eduvate/eduvate-api/internal/placement"
)

// GET /api/placements/stats
func PlacementStatsHandler(store placement.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.Stats(r.Context())
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// GET /api/placements/college/{collegeID}
func CollegePlacementsHandler(store placement.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "collegeID")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid college id")
			return
		}
		list, err := store.ListByCollege(r.Context(), id)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"placements": list})
	}
}
