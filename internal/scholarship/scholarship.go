// Package scholarship lists scholarships and their eligible exams.
package scholarship

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/db"
)

var ErrNotFound = errors.New("scholarship not found")

type Scholarship struct {
	ID          int64        `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Provider    string       `db:"provider" json:"provider"`
	Amount      float64      `db:"amount" json:"amount"`
	Eligibility string       `db:"eligibility" json:"eligibility"`
	Deadline    string       `db:"deadline" json:"deadline"`
	Category    string       `db:"category" json:"category"` // merit|need|category|sports
	ExamTypes   db.StringList `db:"exam_types" json:"exam_types"`
}

type ListOpts struct {
	Category string
	ExamType string
}

type Store interface {
	// List returns scholarships ordered by amount, largest first.
	List(ctx context.Context, opts ListOpts) ([]Scholarship, error)
	Get(ctx context.Context, id int64) (Scholarship, error)
}

const columns = `id, name, provider, amount, eligibility, deadline, category, exam_types`

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

// likeEscaper quotes LIKE wildcards; patterns use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Scholarship, error) {
	var (
		where []string
		args  []any
	)
	if v := strings.TrimSpace(opts.Category); v != "" {
		args = append(args, v)
		where = append(where, `category = $`+strconv.Itoa(len(args)))
	}
	if v := strings.ToLower(strings.TrimSpace(opts.ExamType)); v != "" {
		// exam_types holds a JSON array; match the quoted element, not a substring
		tag, _ := json.Marshal(v)
		args = append(args, "%"+likeEscaper.Replace(string(tag))+"%")
		where = append(where, `LOWER(exam_types) LIKE $`+strconv.Itoa(len(args))+` ESCAPE '\'`)
	}
	q := `SELECT ` + columns + ` FROM scholarships`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY amount DESC, id ASC`

	out := []Scholarship{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "scholarship: list")
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Scholarship, error) {
	var sc Scholarship
	err := s.db.GetContext(ctx, &sc, `SELECT `+columns+` FROM scholarships WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Scholarship{}, ErrNotFound
	}
	if err != nil {
		return Scholarship{}, errors.Wrapf(err, "scholarship: get %d", id)
	}
	return sc, nil
}
