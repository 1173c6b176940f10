package college

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("college not found")
	ErrCutoffExists = errors.New("cutoff already recorded for college, exam type and year")
)

type ListOpts struct {
	Type   string
	State  string
	Search string // substring of name or short_name, case-insensitive
}

type Store interface {
	ListColleges(ctx context.Context, opts ListOpts) ([]College, error)
	GetCollege(ctx context.Context, id int64) (College, error)
	// ResolveCollegeID accepts a numeric id or a short name.
	ResolveCollegeID(ctx context.Context, ref string) (int64, error)

	// ListCutoffs returns every cutoff of a college, newest year first.
	ListCutoffs(ctx context.Context, collegeID int64) ([]Cutoff, error)
	// LatestCutoffs returns each college that has a cutoff for examType,
	// paired with its latest-year record, ordered by ranking ascending.
	LatestCutoffs(ctx context.Context, examType string) ([]Candidate, error)

	AddCutoff(ctx context.Context, c Cutoff) (Cutoff, error)
	// AddCutoffs inserts all records in one transaction. Records that already
	// exist are skipped and counted rather than failing the batch.
	AddCutoffs(ctx context.Context, cs []Cutoff) (inserted, skipped int, err error)
}
