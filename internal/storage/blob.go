package storage

import (
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}

// ArchiveKey builds a unique, date-partitioned key for an uploaded file,
// e.g. "cutoffs/2025/06/30/<uuid>-cutoffs_2025.xlsx".
func ArchiveKey(prefix string, at time.Time, filename string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, filepath.Base(filename))
	if name == "" || name == "." || name == "_" {
		name = "upload"
	}
	return path.Join(prefix, at.UTC().Format("2006/01/02"), uuid.NewString()+"-"+name)
}
