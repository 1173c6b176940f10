package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/sheets"
	"github.com/eduvate/eduvate-api/internal/storage"
)

const maxWorkbook = 10 << 20

type cutoffRequest struct {
	CollegeID int64  `json:"college_id" validate:"required,gt=0"`
	ExamType  string `json:"exam_type" validate:"required"`
	Year      int    `json:"year" validate:"required,gte=1900,lte=2100"`
	General   *int64 `json:"general" validate:"required,gt=0"`
	OBC       *int64 `json:"obc" validate:"omitempty,gt=0"`
	SC        *int64 `json:"sc" validate:"omitempty,gt=0"`
	ST        *int64 `json:"st" validate:"omitempty,gt=0"`
	EWS       *int64 `json:"ews" validate:"omitempty,gt=0"`
}

// POST /api/admin/cutoffs
func AddCutoffHandler(svc *college.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cutoffRequest
		if rerr := decodeValid(r, &req, "invalid cutoff"); rerr != nil {
			rerr.write(w)
			return
		}
		c, err := svc.AddCutoff(r.Context(), college.Cutoff{
			CollegeID: req.CollegeID,
			ExamType:  req.ExamType,
			Year:      req.Year,
			CutoffSet: college.CutoffSet{General: req.General, OBC: req.OBC, SC: req.SC, ST: req.ST, EWS: req.EWS},
		})
		switch {
		case errors.Is(err, college.ErrNotFound):
			writeError(w, http.StatusNotFound, "College not found")
		case errors.Is(err, college.ErrCutoffExists):
			writeError(w, http.StatusConflict, "Cutoff already recorded for this college, exam type and year")
		case err != nil:
			serverError(w, r, err)
		default:
			writeJSON(w, http.StatusCreated, map[string]any{"cutoff": c})
		}
	}
}

// POST /api/admin/cutoffs/import  multipart file=<workbook.xlsx>
// The upload is archived before parsing so rejected files can be inspected.
func ImportCutoffsHandler(svc *college.Service, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxWorkbook+1<<20)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxWorkbook+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		if len(data) > maxWorkbook {
			writeError(w, http.StatusRequestEntityTooLarge, "workbook too large")
			return
		}

		key, err := bs.Put(storage.ArchiveKey("cutoffs", time.Now(), hdr.Filename), bytes.NewReader(data))
		if err != nil {
			serverError(w, r, err)
			return
		}

		rows, err := sheets.ParseCutoffs(bytes.NewReader(data))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ids := map[string]int64{}
		cutoffs := make([]college.Cutoff, 0, len(rows))
		for _, row := range rows {
			id, ok := ids[row.CollegeRef]
			if !ok {
				id, err = svc.Store().ResolveCollegeID(r.Context(), row.CollegeRef)
				if errors.Is(err, college.ErrNotFound) {
					writeError(w, http.StatusBadRequest, fmt.Sprintf("row %d: unknown college %q", row.Line, row.CollegeRef))
					return
				}
				if err != nil {
					serverError(w, r, err)
					return
				}
				ids[row.CollegeRef] = id
			}
			cutoffs = append(cutoffs, college.Cutoff{
				CollegeID: id,
				ExamType:  row.ExamType,
				Year:      row.Year,
				CutoffSet: row.CutoffSet,
			})
		}

		inserted, skipped, err := svc.ImportCutoffs(r.Context(), cutoffs)
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"inserted": inserted, "skipped": skipped, "archive": key})
	}
}
