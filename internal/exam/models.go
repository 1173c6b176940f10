package exam

// Exam is an entrance exam calendar entry. Dates are ISO-8601 (YYYY-MM-DD).
type Exam struct {
	ID                   int64  `db:"id" json:"id"`
	Name                 string `db:"name" json:"name"`
	FullName             string `db:"full_name" json:"full_name"`
	Date                 string `db:"date" json:"date"`
	ResultDate           string `db:"result_date" json:"result_date"`
	CounsellingStart     string `db:"counselling_start" json:"counselling_start"`
	CounsellingEnd       string `db:"counselling_end" json:"counselling_end"`
	Type                 string `db:"type" json:"type"` // engineering|medical|general
	RegistrationDeadline string `db:"registration_deadline" json:"registration_deadline"`
}
