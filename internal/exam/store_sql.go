package exam

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/db"
)

const examColumns = `id, name, full_name, date, result_date, counselling_start,
	counselling_end, type, registration_deadline`

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

func (s *SQLStore) ListExams(ctx context.Context, opts ListOpts) ([]Exam, error) {
	q := `SELECT ` + examColumns + ` FROM exams`
	var args []any
	if v := strings.TrimSpace(opts.Type); v != "" {
		q += ` WHERE type = $1`
		args = append(args, v)
	}
	q += ` ORDER BY date ASC, id ASC`

	out := []Exam{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "exam: list")
	}
	return out, nil
}

func (s *SQLStore) GetExam(ctx context.Context, id int64) (Exam, error) {
	var e Exam
	err := s.db.GetContext(ctx, &e, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, errors.Wrapf(err, "exam: get %d", id)
	}
	return e, nil
}
