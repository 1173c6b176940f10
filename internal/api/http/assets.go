package http

import (
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/storage"
)

// MountUploads serves archived uploads: GET /{key...}
func MountUploads(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if errors.Is(err, storage.ErrInvalidKey) || errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "upload not found")
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}
		defer rc.Close()

		base := path.Base(key)
		name := fileToken(strings.ToLower(strings.TrimSuffix(base, path.Ext(base))))
		ct := "application/octet-stream"
		if strings.EqualFold(path.Ext(base), ".xlsx") {
			ct = xlsxContentType
			name += ".xlsx"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = io.Copy(w, rc)
	})
}
