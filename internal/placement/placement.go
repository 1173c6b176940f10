// Package placement serves per-college placement records and the
// aggregate statistics shown on the dashboard.
package placement

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eduvate/eduvate-api/internal/db"
)

const (
	lakh        = 100000
	topN        = 10
	fallbackHue = "hsl(0, 0%, 60%)"
)

var sectorPalette = []string{
	"hsl(234, 89%, 54%)",
	"hsl(166, 76%, 42%)",
	"hsl(38, 92%, 50%)",
	"hsl(280, 70%, 50%)",
	fallbackHue,
}

type Placement struct {
	ID             int64   `db:"id" json:"id"`
	CollegeID      int64   `db:"college_id" json:"college_id"`
	Year           int     `db:"year" json:"year"`
	Sector         string  `db:"sector" json:"sector"`
	Company        string  `db:"company" json:"company"`
	Offers         int     `db:"offers" json:"offers"`
	AvgPackage     float64 `db:"avg_package" json:"avg_package"`
	HighestPackage float64 `db:"highest_package" json:"highest_package"`
}

// YearPackages is one point of the average-package chart: the year plus the
// rounded average package in lakhs per college type. It encodes flat, e.g.
// {"year":"2024","IIT":21,"NIT":12}.
type YearPackages struct {
	Year   string
	ByType map[string]int
}

func (y YearPackages) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(y.ByType)+1)
	for k, v := range y.ByType {
		m[k] = v
	}
	m["year"] = y.Year
	return json.Marshal(m)
}

type SectorShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // percent of offers
	Color string `json:"color"`
}

type Recruiter struct {
	Name       string `json:"name"`
	Offers     int    `json:"offers"`
	AvgPackage int    `json:"avgPackage"` // lakhs
}

type Stats struct {
	AvgPackages        []YearPackages `json:"avgPackages"`
	SectorDistribution []SectorShare  `json:"sectorDistribution"`
	TopRecruiters      []Recruiter    `json:"topRecruiters"`
}

type Store interface {
	Stats(ctx context.Context) (Stats, error)
	// ListByCollege orders by year descending, then offers descending.
	ListByCollege(ctx context.Context, collegeID int64) ([]Placement, error)
}

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

func toLakhs(v float64) int { return int(math.Round(v / lakh)) }

func (s *SQLStore) ListByCollege(ctx context.Context, collegeID int64) ([]Placement, error) {
	out := []Placement{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, college_id, year, sector, company, offers, avg_package, highest_package
		  FROM placements
		 WHERE college_id = $1
		 ORDER BY year DESC, offers DESC, id ASC`, collegeID)
	if err != nil {
		return nil, errors.Wrapf(err, "placement: list for college %d", collegeID)
	}
	return out, nil
}

// Stats runs the three aggregations concurrently.
func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.AvgPackages, err = s.avgPackages(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.SectorDistribution, err = s.sectorDistribution(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.TopRecruiters, err = s.topRecruiters(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *SQLStore) avgPackages(ctx context.Context) ([]YearPackages, error) {
	var rows []struct {
		Year       int     `db:"year"`
		Type       string  `db:"type"`
		AvgPackage float64 `db:"avg_package"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT p.year, c.type, AVG(p.avg_package) AS avg_package
		  FROM placements p
		  JOIN colleges c ON p.college_id = c.id
		 GROUP BY p.year, c.type
		 ORDER BY p.year ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "placement: average packages")
	}

	byYear := map[int]*YearPackages{}
	var years []int
	for _, r := range rows {
		yp, ok := byYear[r.Year]
		if !ok {
			yp = &YearPackages{Year: strconv.Itoa(r.Year), ByType: map[string]int{}}
			byYear[r.Year] = yp
			years = append(years, r.Year)
		}
		yp.ByType[r.Type] = toLakhs(r.AvgPackage)
	}
	sort.Ints(years)

	out := make([]YearPackages, 0, len(years))
	for _, y := range years {
		out = append(out, *byYear[y])
	}
	return out, nil
}

func (s *SQLStore) sectorDistribution(ctx context.Context) ([]SectorShare, error) {
	var rows []struct {
		Sector string `db:"sector"`
		Offers int64  `db:"total_offers"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT sector, SUM(offers) AS total_offers
		  FROM placements
		 WHERE year = (SELECT MAX(year) FROM placements)
		 GROUP BY sector
		 ORDER BY total_offers DESC, sector ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "placement: sector distribution")
	}

	var total int64
	for _, r := range rows {
		total += r.Offers
	}
	out := make([]SectorShare, 0, len(rows))
	for i, r := range rows {
		color := fallbackHue
		if i < len(sectorPalette) {
			color = sectorPalette[i]
		}
		share := SectorShare{Name: r.Sector, Color: color}
		if total > 0 {
			share.Value = int(math.Round(float64(r.Offers) / float64(total) * 100))
		}
		out = append(out, share)
	}
	return out, nil
}

func (s *SQLStore) topRecruiters(ctx context.Context) ([]Recruiter, error) {
	var rows []struct {
		Company    string  `db:"company"`
		Offers     int64   `db:"total_offers"`
		AvgPackage float64 `db:"avg_package"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT company, SUM(offers) AS total_offers, AVG(avg_package) AS avg_package
		  FROM placements
		 WHERE year = (SELECT MAX(year) FROM placements)
		 GROUP BY company
		 ORDER BY total_offers DESC, company ASC
		 LIMIT `+strconv.Itoa(topN))
	if err != nil {
		return nil, errors.Wrap(err, "placement: top recruiters")
	}

	out := make([]Recruiter, 0, len(rows))
	for _, r := range rows {
		out = append(out, Recruiter{Name: r.Company, Offers: int(r.Offers), AvgPackage: toLakhs(r.AvgPackage)})
	}
	return out, nil
}
