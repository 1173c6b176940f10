package college

import (
	"github.com/eduvate/eduvate-api/internal/db"
)

type College struct {
	ID             int64         `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	ShortName      string        `db:"short_name" json:"short_name"`
	Location       string        `db:"location" json:"location"`
	State          string        `db:"state" json:"state"`
	Type           string        `db:"type" json:"type"` // IIT|NIT|IIIT|GFTI|State|Private|Medical|Central
	Ranking        int           `db:"ranking" json:"ranking"`
	Fees           float64       `db:"fees" json:"fees"`
	AvgPackage     float64       `db:"avg_package" json:"avg_package"`
	HighestPackage float64       `db:"highest_package" json:"highest_package"`
	PlacementRate  float64       `db:"placement_rate" json:"placement_rate"`
	TopRecruiters  db.StringList `db:"top_recruiters" json:"top_recruiters"`
	Facilities     db.StringList `db:"facilities" json:"facilities"`
	Courses        db.StringList `db:"courses" json:"courses"`
	Established    int           `db:"established" json:"established"`
	Accreditation  string        `db:"accreditation" json:"accreditation"`
	ImageURL       string        `db:"image_url" json:"image_url,omitempty"`
}

// CutoffSet holds closing ranks per reservation category. A nil value means
// no cutoff was published for that category.
type CutoffSet struct {
	General *int64 `db:"general" json:"general"`
	OBC     *int64 `db:"obc" json:"obc"`
	SC      *int64 `db:"sc" json:"sc"`
	ST      *int64 `db:"st" json:"st"`
	EWS     *int64 `db:"ews" json:"ews"`
}

// Cutoff is one published (college, exam type, year) record. Records are
// never updated once stored.
type Cutoff struct {
	ID        int64  `db:"id" json:"id,omitempty"`
	CollegeID int64  `db:"college_id" json:"college_id"`
	ExamType  string `db:"exam_type" json:"exam_type"`
	Year      int    `db:"year" json:"year"`
	CutoffSet
}

// YearlyCutoff is the per-year view used on the college detail page.
type YearlyCutoff struct {
	Year int `json:"year"`
	CutoffSet
}

// Detail is a college with its full cutoff history grouped by exam type,
// newest year first.
type Detail struct {
	College
	Cutoffs map[string][]YearlyCutoff `json:"cutoffs"`
}

// Candidate pairs a college with its latest cutoff for one exam type.
type Candidate struct {
	College
	Year int `db:"year" json:"year"`
	CutoffSet
}
