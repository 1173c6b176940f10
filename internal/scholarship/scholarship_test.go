package scholarship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/db/dbtest"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	dbh := dbtest.Open(t)
	dbtest.Exec(t, dbh,
		`INSERT INTO scholarships (name, provider, amount, eligibility, deadline, category, exam_types)
		 VALUES ('INSPIRE', 'DST', 80000, 'Top 1%', '2025-10-31', 'merit', '["jee","neet"]')`,
		`INSERT INTO scholarships (name, provider, amount, eligibility, deadline, category, exam_types)
		 VALUES ('Post Matric', 'MoSJE', 25000, 'SC/ST students', '2025-11-30', 'category', '["jee","neet","cuet"]')`,
		`INSERT INTO scholarships (name, provider, amount, eligibility, deadline, category, exam_types)
		 VALUES ('Sports Quota Grant', 'SAI', 50000, 'State athletes', '2025-09-15', 'sports', '["cuet"]')`,
		`INSERT INTO scholarships (name, provider, amount, eligibility, deadline, category, exam_types)
		 VALUES ('JEE Prep Merit', 'Trust', 10000, 'Rank under 5000', '2025-08-01', 'merit', '["jee_advanced"]')`,
	)
	return NewSQLStore(dbh, db.DriverSQLite)
}

func names(ss []Scholarship) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}

func TestListOrderedByAmount(t *testing.T) {
	got, err := newStore(t).List(context.Background(), ListOpts{})
	require.NoError(t, err)
	assert.Equal(t, []string{"INSPIRE", "Sports Quota Grant", "Post Matric", "JEE Prep Merit"}, names(got))
	assert.Equal(t, []string{"jee", "neet"}, []string(got[0].ExamTypes))
}

func TestListFilters(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	merit, err := s.List(ctx, ListOpts{Category: "merit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"INSPIRE", "JEE Prep Merit"}, names(merit))

	jee, err := s.List(ctx, ListOpts{ExamType: "JEE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"INSPIRE", "Post Matric"}, names(jee), "jee must not match jee_advanced")

	both, err := s.List(ctx, ListOpts{Category: "category", ExamType: "cuet"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Post Matric"}, names(both))
}

func TestListExamTypeIsLiteral(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	exact, err := s.List(ctx, ListOpts{ExamType: "jee_advanced"})
	require.NoError(t, err)
	assert.Equal(t, []string{"JEE Prep Merit"}, names(exact))

	for _, pattern := range []string{"___", "_", "%", "jee%", "jee?advanced", "jee%advanced", `jee\_advanced`} {
		got, err := s.List(ctx, ListOpts{ExamType: pattern})
		require.NoError(t, err)
		assert.Empty(t, got, "examType %q", pattern)
	}
}

func TestGetNotFound(t *testing.T) {
	_, err := newStore(t).Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
