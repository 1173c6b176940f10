package http

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/hostel"
)

// GET /api/hostels?location=&type=&gender=&maxRent=
func ListHostelsHandler(store hostel.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := hostel.ListOpts{
			Location: q.Get("location"),
			Type:     q.Get("type"),
			Gender:   q.Get("gender"),
		}
		if v := q.Get("maxRent"); v != "" {
			rent, err := strconv.ParseFloat(v, 64)
			if err != nil || rent < 0 {
				writeError(w, http.StatusBadRequest, "maxRent must be a non-negative number")
				return
			}
			opts.MaxRent = rent
		}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hostels": list})
	}
}

// GET /api/hostels/{id}
func GetHostelHandler(store hostel.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid hostel id")
			return
		}
		h, err := store.Get(r.Context(), id)
		if errors.Is(err, hostel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Hostel not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hostel": h})
	}
}
