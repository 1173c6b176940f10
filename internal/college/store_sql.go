package college

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/db"
)

const collegeColumns = `c.id, c.name, c.short_name, c.location, c.state, c.type, c.ranking,
	c.fees, c.avg_package, c.highest_package, c.placement_rate,
	c.top_recruiters, c.facilities, c.courses, c.established, c.accreditation, c.image_url`

const insertCutoffSQL = `INSERT INTO cutoffs (college_id, exam_type, year, general, obc, sc, st, ews)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	ON CONFLICT (college_id, exam_type, year) DO NOTHING
	RETURNING id`

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

func (s *SQLStore) ListColleges(ctx context.Context, opts ListOpts) ([]College, error) {
	q := `SELECT ` + collegeColumns + ` FROM colleges c WHERE 1=1`
	var args []any
	if v := strings.TrimSpace(opts.Type); v != "" {
		args = append(args, v)
		q += ` AND c.type = $` + strconv.Itoa(len(args))
	}
	if v := strings.TrimSpace(opts.State); v != "" {
		args = append(args, v)
		q += ` AND c.state = $` + strconv.Itoa(len(args))
	}
	if v := strings.TrimSpace(opts.Search); v != "" {
		args = append(args, "%"+strings.ToLower(v)+"%")
		n := strconv.Itoa(len(args))
		q += ` AND (LOWER(c.name) LIKE $` + n + ` OR LOWER(c.short_name) LIKE $` + n + `)`
	}
	q += ` ORDER BY c.ranking ASC, c.id ASC`

	out := []College{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "college: list")
	}
	return out, nil
}

func (s *SQLStore) GetCollege(ctx context.Context, id int64) (College, error) {
	var c College
	err := s.db.GetContext(ctx, &c, `SELECT `+collegeColumns+` FROM colleges c WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return College{}, ErrNotFound
	}
	if err != nil {
		return College{}, errors.Wrapf(err, "college: get %d", id)
	}
	return c, nil
}

func (s *SQLStore) ResolveCollegeID(ctx context.Context, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, ErrNotFound
	}
	var id int64
	var err error
	if n, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		err = s.db.GetContext(ctx, &id, `SELECT id FROM colleges WHERE id = $1`, n)
	} else {
		err = s.db.GetContext(ctx, &id,
			`SELECT id FROM colleges WHERE LOWER(short_name) = $1 ORDER BY id LIMIT 1`, strings.ToLower(ref))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrapf(err, "college: resolve %q", ref)
	}
	return id, nil
}

func (s *SQLStore) ListCutoffs(ctx context.Context, collegeID int64) ([]Cutoff, error) {
	out := []Cutoff{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, college_id, exam_type, year, general, obc, sc, st, ews
		  FROM cutoffs
		 WHERE college_id = $1
		 ORDER BY exam_type ASC, year DESC`, collegeID)
	if err != nil {
		return nil, errors.Wrapf(err, "college: cutoffs of %d", collegeID)
	}
	return out, nil
}

func (s *SQLStore) LatestCutoffs(ctx context.Context, examType string) ([]Candidate, error) {
	out := []Candidate{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+collegeColumns+`, cu.year, cu.general, cu.obc, cu.sc, cu.st, cu.ews
		  FROM colleges c
		  JOIN cutoffs cu ON cu.college_id = c.id
		 WHERE cu.exam_type = $1
		   AND cu.year = (SELECT MAX(year) FROM cutoffs WHERE college_id = c.id AND exam_type = $1)
		 ORDER BY c.ranking ASC, c.id ASC`, examType)
	if err != nil {
		return nil, errors.Wrapf(err, "college: latest cutoffs for %q", examType)
	}
	return out, nil
}

func (s *SQLStore) AddCutoff(ctx context.Context, c Cutoff) (Cutoff, error) {
	if _, err := s.GetCollege(ctx, c.CollegeID); err != nil {
		return Cutoff{}, err
	}
	err := s.db.QueryRowContext(ctx, insertCutoffSQL,
		c.CollegeID, c.ExamType, c.Year, c.General, c.OBC, c.SC, c.ST, c.EWS).Scan(&c.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return Cutoff{}, ErrCutoffExists
	}
	if err != nil {
		return Cutoff{}, errors.Wrap(err, "college: add cutoff")
	}
	return c, nil
}

func (s *SQLStore) AddCutoffs(ctx context.Context, cs []Cutoff) (inserted, skipped int, err error) {
	err = db.WithTx(ctx, s.db.DB, nil, func(tx *sql.Tx) error {
		for _, c := range cs {
			var id int64
			e := tx.QueryRowContext(ctx, insertCutoffSQL,
				c.CollegeID, c.ExamType, c.Year, c.General, c.OBC, c.SC, c.ST, c.EWS).Scan(&id)
			switch {
			case e == nil:
				inserted++
			case errors.Is(e, sql.ErrNoRows):
				skipped++
			default:
				return errors.Wrapf(e, "college: import cutoff for college %d (%s %d)", c.CollegeID, c.ExamType, c.Year)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, skipped, nil
}
