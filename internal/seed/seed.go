// Package seed loads the bundled demo dataset into the database.
package seed

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/eduvate/eduvate-api/internal/db"
)

//go:embed data.yaml
var defaultData []byte

// DefaultRandSeed makes generated placement rows identical across runs.
const DefaultRandSeed = 2024

const placementYear = 2024

var sectors = []string{"IT/Software", "Finance", "Consulting", "Core Engineering", "Others"}

type Cutoff struct {
	Year    int    `yaml:"year"`
	General *int64 `yaml:"general"`
	OBC     *int64 `yaml:"obc"`
	SC      *int64 `yaml:"sc"`
	ST      *int64 `yaml:"st"`
	EWS     *int64 `yaml:"ews"`
}

type College struct {
	Name           string              `yaml:"name"`
	ShortName      string              `yaml:"short_name"`
	Location       string              `yaml:"location"`
	State          string              `yaml:"state"`
	Type           string              `yaml:"type"`
	Ranking        int                 `yaml:"ranking"`
	Fees           float64             `yaml:"fees"`
	AvgPackage     float64             `yaml:"avg_package"`
	HighestPackage float64             `yaml:"highest_package"`
	PlacementRate  float64             `yaml:"placement_rate"`
	TopRecruiters  []string            `yaml:"top_recruiters"`
	Facilities     []string            `yaml:"facilities"`
	Courses        []string            `yaml:"courses"`
	Established    int                 `yaml:"established"`
	Accreditation  string              `yaml:"accreditation"`
	ImageURL       string              `yaml:"image_url"`
	Cutoffs        map[string][]Cutoff `yaml:"cutoffs"` // exam type -> yearly rows
}

type Exam struct {
	Name                 string `yaml:"name"`
	FullName             string `yaml:"full_name"`
	Date                 string `yaml:"date"`
	ResultDate           string `yaml:"result_date"`
	CounsellingStart     string `yaml:"counselling_start"`
	CounsellingEnd       string `yaml:"counselling_end"`
	Type                 string `yaml:"type"`
	RegistrationDeadline string `yaml:"registration_deadline"`
}

type Scholarship struct {
	Name        string   `yaml:"name"`
	Provider    string   `yaml:"provider"`
	Amount      float64  `yaml:"amount"`
	Eligibility string   `yaml:"eligibility"`
	Deadline    string   `yaml:"deadline"`
	Category    string   `yaml:"category"`
	ExamTypes   []string `yaml:"exam_types"`
}

type Hostel struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Location       string   `yaml:"location"`
	NearbyColleges []string `yaml:"nearby_colleges"`
	Distance       float64  `yaml:"distance"`
	Rent           float64  `yaml:"rent"`
	Amenities      []string `yaml:"amenities"`
	Gender         string   `yaml:"gender"`
	Rating         float64  `yaml:"rating"`
	Reviews        int      `yaml:"reviews"`
	ImageURL       string   `yaml:"image_url"`
}

// Recruiter drives the generated placement rows. AvgPackage is in lakhs.
type Recruiter struct {
	Name       string  `yaml:"name"`
	Offers     int     `yaml:"offers"`
	AvgPackage float64 `yaml:"avg_package"`
}

type Data struct {
	Colleges     []College     `yaml:"colleges"`
	Exams        []Exam        `yaml:"exams"`
	Scholarships []Scholarship `yaml:"scholarships"`
	Hostels      []Hostel      `yaml:"hostels"`
	Recruiters   []Recruiter   `yaml:"recruiters"`
}

// Counts summarises what Apply inserted.
type Counts struct {
	Colleges     int
	Cutoffs      int
	Exams        int
	Scholarships int
	Hostels      int
	Placements   int
}

// Default returns the bundled dataset.
func Default() (Data, error) {
	return Parse(bytes.NewReader(defaultData))
}

func Parse(r io.Reader) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Data{}, errors.Wrap(err, "seed: decode")
	}
	return d, nil
}

// Apply replaces all catalogue tables with d inside one transaction. User
// accounts are left untouched. Placement rows are generated from
// rand.NewSource(randSeed).
func Apply(ctx context.Context, dbh *sql.DB, d Data, randSeed int64) (Counts, error) {
	var n Counts
	err := db.WithTx(ctx, dbh, nil, func(tx *sql.Tx) error {
		for _, t := range []string{"placements", "cutoffs", "hostels", "scholarships", "exams", "colleges"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
				return errors.Wrapf(err, "seed: clear %s", t)
			}
		}

		type seeded struct {
			id  int64
			typ string
		}
		var inserted []seeded
		for _, c := range d.Colleges {
			var id int64
			err := tx.QueryRowContext(ctx, `
				INSERT INTO colleges (name, short_name, location, state, type, ranking, fees,
					avg_package, highest_package, placement_rate, top_recruiters, facilities,
					courses, established, accreditation, image_url)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
				RETURNING id`,
				c.Name, c.ShortName, c.Location, c.State, c.Type, c.Ranking, c.Fees,
				c.AvgPackage, c.HighestPackage, c.PlacementRate,
				db.StringList(c.TopRecruiters), db.StringList(c.Facilities), db.StringList(c.Courses),
				c.Established, c.Accreditation, c.ImageURL,
			).Scan(&id)
			if err != nil {
				return errors.Wrapf(err, "seed: college %s", c.ShortName)
			}
			inserted = append(inserted, seeded{id, c.Type})
			n.Colleges++

			for exam, rows := range c.Cutoffs {
				for _, cu := range rows {
					_, err := tx.ExecContext(ctx, `
						INSERT INTO cutoffs (college_id, exam_type, year, general, obc, sc, st, ews)
						VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
						id, exam, cu.Year, cu.General, cu.OBC, cu.SC, cu.ST, cu.EWS)
					if err != nil {
						return errors.Wrapf(err, "seed: %s cutoff %s %d", c.ShortName, exam, cu.Year)
					}
					n.Cutoffs++
				}
			}
		}

		for _, e := range d.Exams {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO exams (name, full_name, date, result_date, counselling_start,
					counselling_end, type, registration_deadline)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				e.Name, e.FullName, e.Date, e.ResultDate, e.CounsellingStart,
				e.CounsellingEnd, e.Type, e.RegistrationDeadline)
			if err != nil {
				return errors.Wrapf(err, "seed: exam %s", e.Name)
			}
			n.Exams++
		}

		for _, s := range d.Scholarships {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO scholarships (name, provider, amount, eligibility, deadline, category, exam_types)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				s.Name, s.Provider, s.Amount, s.Eligibility, s.Deadline, s.Category, db.StringList(s.ExamTypes))
			if err != nil {
				return errors.Wrapf(err, "seed: scholarship %s", s.Name)
			}
			n.Scholarships++
		}

		for _, h := range d.Hostels {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO hostels (name, type, location, nearby_colleges, distance, rent,
					amenities, gender, rating, reviews, image_url)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
				h.Name, h.Type, h.Location, db.StringList(h.NearbyColleges), h.Distance, h.Rent,
				db.StringList(h.Amenities), h.Gender, h.Rating, h.Reviews, h.ImageURL)
			if err != nil {
				return errors.Wrapf(err, "seed: hostel %s", h.Name)
			}
			n.Hostels++
		}

		insertPlacement := func(collegeID int64, sector, company string, offers int, avg, highest float64) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				collegeID, placementYear, sector, company, offers, avg, highest)
			if err != nil {
				return errors.Wrapf(err, "seed: placement %s at college %d", company, collegeID)
			}
			n.Placements++
			return nil
		}

		// Each recruiter hires at the first ten IITs and NITs.
		var flagship []int64
		for _, c := range inserted {
			if (c.typ == "IIT" || c.typ == "NIT") && len(flagship) < 10 {
				flagship = append(flagship, c.id)
			}
		}
		for _, r := range d.Recruiters {
			for _, id := range flagship {
				if err := insertPlacement(id, "IT/Software", r.Name, r.Offers/10, r.AvgPackage*100000, r.AvgPackage*150000); err != nil {
					return err
				}
			}
		}

		rng := rand.New(rand.NewSource(randSeed))
		for _, c := range inserted {
			for _, sector := range sectors {
				offers := rng.Intn(50) + 10
				avg := (rng.Float64()*20 + 10) * 100000
				highest := (rng.Float64()*40 + 20) * 100000
				if err := insertPlacement(c.id, sector, sector+" Company", offers, avg, highest); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return n, nil
}
