package exam

import (
	"context"
	"testing"

	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/db/dbtest"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	dbh := dbtest.Open(t)
	dbtest.Exec(t, dbh,
		`INSERT INTO exams (name, full_name, date, type) VALUES ('NEET', 'National Eligibility cum Entrance Test', '2025-05-04', 'medical')`,
		`INSERT INTO exams (name, full_name, date, type) VALUES ('JEE Main', 'Joint Entrance Examination Main', '2025-01-22', 'engineering')`,
		`INSERT INTO exams (name, full_name, date, type) VALUES ('JEE Advanced', 'Joint Entrance Examination Advanced', '2025-05-18', 'engineering')`,
	)
	return NewSQLStore(dbh, db.DriverSQLite)
}

func TestListExamsOrderedByDate(t *testing.T) {
	s := newStore(t)
	got, err := s.ListExams(context.Background(), ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"JEE Main", "NEET", "JEE Advanced"}
	if len(got) != len(want) {
		t.Fatalf("got %d exams, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("exam %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestListExamsByType(t *testing.T) {
	s := newStore(t)
	got, err := s.ListExams(context.Background(), ListOpts{Type: "engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d engineering exams, want 2", len(got))
	}
	none, err := s.ListExams(context.Background(), ListOpts{Type: "law"})
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", none)
	}
}

func TestGetExam(t *testing.T) {
	s := newStore(t)
	e, err := s.GetExam(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "JEE Main" || e.Date != "2025-01-22" {
		t.Fatalf("unexpected exam %+v", e)
	}
	if _, err := s.GetExam(context.Background(), 99); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
