package exam

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("exam not found")

type ListOpts struct {
	Type string
}

type Store interface {
	// ListExams returns calendar entries ordered by date ascending.
	ListExams(ctx context.Context, opts ListOpts) ([]Exam, error)
	GetExam(ctx context.Context, id int64) (Exam, error)
}
