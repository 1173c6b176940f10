// Package hostel lists student accommodation near colleges.
package hostel

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/db"
)

var ErrNotFound = errors.New("hostel not found")

const GenderUnisex = "unisex"

type Hostel struct {
	ID             int64         `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	Type           string        `db:"type" json:"type"` // PG|Hostel|Flat
	Location       string        `db:"location" json:"location"`
	NearbyColleges db.StringList `db:"nearby_colleges" json:"nearby_colleges"`
	Distance       float64       `db:"distance" json:"distance"`
	Rent           float64       `db:"rent" json:"rent"`
	Amenities      db.StringList `db:"amenities" json:"amenities"`
	Gender         string        `db:"gender" json:"gender"`
	Rating         float64       `db:"rating" json:"rating"`
	Reviews        int           `db:"reviews" json:"reviews"`
	ImageURL       string        `db:"image_url" json:"image_url"`
}

type ListOpts struct {
	Location string // substring
	Type     string
	// Gender matches hostels of that gender plus unisex ones.
	// "unisex" or empty disables the filter.
	Gender  string
	MaxRent float64 // 0 disables
}

type Store interface {
	// List orders by rating descending, then rent ascending.
	List(ctx context.Context, opts ListOpts) ([]Hostel, error)
	Get(ctx context.Context, id int64) (Hostel, error)
}

const columns = `id, name, type, location, nearby_colleges, distance, rent,
	amenities, gender, rating, reviews, image_url`

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Hostel, error) {
	q := `SELECT ` + columns + ` FROM hostels WHERE 1=1`
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return `$` + strconv.Itoa(len(args))
	}

	if v := strings.TrimSpace(opts.Location); v != "" {
		q += ` AND LOWER(location) LIKE ` + next("%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(opts.Type); v != "" {
		q += ` AND type = ` + next(v)
	}
	if v := strings.ToLower(strings.TrimSpace(opts.Gender)); v != "" && v != GenderUnisex {
		q += ` AND (gender = ` + next(v) + ` OR gender = '` + GenderUnisex + `')`
	}
	if opts.MaxRent > 0 {
		q += ` AND rent <= ` + next(opts.MaxRent)
	}
	q += ` ORDER BY rating DESC, rent ASC, id ASC`

	out := []Hostel{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "hostel: list")
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Hostel, error) {
	var h Hostel
	err := s.db.GetContext(ctx, &h, `SELECT `+columns+` FROM hostels WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Hostel{}, ErrNotFound
	}
	if err != nil {
		return Hostel{}, errors.Wrapf(err, "hostel: get %d", id)
	}
	return h, nil
}
