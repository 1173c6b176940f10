package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/sheets"
)

type predictRequest struct {
	Rank     rankValue `json:"rank" validate:"required,gt=0"`
	Category string    `json:"category" validate:"required"`
	ExamType string    `json:"examType" validate:"required"`
}

const predictRequired = "Rank, category, and exam type are required"

// GET /api/colleges?type=&state=&search=
func ListCollegesHandler(store college.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListColleges(r.Context(), college.ListOpts{
			Type:   q.Get("type"),
			State:  q.Get("state"),
			Search: q.Get("search"),
		})
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"colleges": list})
	}
}

// GET /api/colleges/{id}
func GetCollegeHandler(svc *college.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid college id")
			return
		}
		d, err := svc.Detail(r.Context(), id)
		if errors.Is(err, college.ErrNotFound) {
			writeError(w, http.StatusNotFound, "College not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"college": d})
	}
}

func predict(w http.ResponseWriter, r *http.Request, svc *college.Service) (college.Prediction, predictRequest, bool) {
	var req predictRequest
	if rerr := decodeValid(r, &req, predictRequired); rerr != nil {
		rerr.write(w)
		return college.Prediction{}, req, false
	}
	p, err := svc.Predict(r.Context(), float64(req.Rank), req.Category, req.ExamType)
	if err != nil {
		serverError(w, r, err)
		return college.Prediction{}, req, false
	}
	return p, req, true
}

// POST /api/colleges/predict  { "rank": 1500, "category": "obc", "examType": "jee" }
func PredictHandler(svc *college.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _, ok := predict(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": p})
	}
}

// POST /api/colleges/predict/export  (same body) -> XLSX
func ExportPredictionHandler(svc *college.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, req, ok := predict(w, r, svc)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := sheets.WritePrediction(&buf, p); err != nil {
			serverError(w, r, err)
			return
		}
		name := fmt.Sprintf("prediction-%s-%s.xlsx",
			fileToken(college.NormalizeExamType(req.ExamType)), college.ParseCategory(req.Category))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fileToken keeps letters, digits and dashes so s is safe inside a header.
func fileToken(s string) string {
	out := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, s)
	if out == "" {
		return "exam"
	}
	return out
}
