package seed

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduvate/eduvate-api/internal/cache"
	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/db/dbtest"
)

func TestDefaultDataset(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Len(t, d.Colleges, 32)
	assert.Len(t, d.Exams, 6)
	assert.Len(t, d.Scholarships, 8)
	assert.Len(t, d.Hostels, 8)
	assert.Len(t, d.Recruiters, 8)

	seen := map[string]bool{}
	for _, c := range d.Colleges {
		assert.False(t, seen[c.ShortName], "duplicate short name %s", c.ShortName)
		seen[c.ShortName] = true
		assert.NotEmpty(t, c.Cutoffs, c.ShortName)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("colleges:\n  - name: X\n    colour: blue\n"))
	assert.Error(t, err)
}

func placements(t *testing.T, dbh *sql.DB) []string {
	t.Helper()
	rows, err := dbh.Query(`SELECT c.short_name, p.sector, p.company, p.offers
		FROM placements p JOIN colleges c ON c.id = p.college_id ORDER BY c.short_name, p.company`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name, sector, company string
		var offers int
		require.NoError(t, rows.Scan(&name, &sector, &company, &offers))
		out = append(out, strings.Join([]string{name, sector, company, strconv.Itoa(offers)}, "|"))
	}
	require.NoError(t, rows.Err())
	return out
}

func TestApply(t *testing.T) {
	dbh := dbtest.Open(t)
	ctx := context.Background()
	d, err := Default()
	require.NoError(t, err)

	n, err := Apply(ctx, dbh, d, DefaultRandSeed)
	require.NoError(t, err)
	assert.Equal(t, Counts{Colleges: 32, Cutoffs: 302, Exams: 6, Scholarships: 8, Hostels: 8, Placements: 8*10 + 32*5}, n)

	// reapplying replaces rather than duplicates
	n2, err := Apply(ctx, dbh, d, DefaultRandSeed)
	require.NoError(t, err)
	assert.Equal(t, n, n2)
	var colleges int
	require.NoError(t, dbh.QueryRow(`SELECT COUNT(*) FROM colleges`).Scan(&colleges))
	assert.Equal(t, 32, colleges)

	store := college.NewSQLStore(dbh, db.DriverSQLite)
	aiims, err := store.LatestCutoffs(ctx, "neet")
	require.NoError(t, err)
	require.NotEmpty(t, aiims)
	assert.Equal(t, "AIIMS Delhi", aiims[0].ShortName)
	assert.Equal(t, 2024, aiims[0].Year)
	assert.Equal(t, int64(50), *aiims[0].General)

	bombay, err := store.ListColleges(ctx, college.ListOpts{Search: "IIT Bombay"})
	require.NoError(t, err)
	require.Len(t, bombay, 1)
	assert.Contains(t, []string(bombay[0].TopRecruiters), "Google")
}

func TestApplyIsDeterministic(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	a, b := dbtest.Open(t), dbtest.Open(t)
	_, err = Apply(context.Background(), a, d, DefaultRandSeed)
	require.NoError(t, err)
	_, err = Apply(context.Background(), b, d, DefaultRandSeed)
	require.NoError(t, err)

	var sumA, sumB float64
	require.NoError(t, a.QueryRow(`SELECT SUM(avg_package) FROM placements`).Scan(&sumA))
	require.NoError(t, b.QueryRow(`SELECT SUM(avg_package) FROM placements`).Scan(&sumB))
	assert.Equal(t, sumA, sumB)
	assert.Equal(t, placements(t, a), placements(t, b))
}

func TestApplyRollsBackOnError(t *testing.T) {
	dbh := dbtest.Open(t)
	ctx := context.Background()
	d, err := Default()
	require.NoError(t, err)
	_, err = Apply(ctx, dbh, d, DefaultRandSeed)
	require.NoError(t, err)

	// the same (college, exam, year) twice violates the cutoff unique key
	bad := Data{Colleges: []College{{
		Name: "Broken", ShortName: "BRK", Type: "Private",
		Cutoffs: map[string][]Cutoff{"jee": {{Year: 2024}, {Year: 2024}}},
	}}}
	_, err = Apply(ctx, dbh, bad, DefaultRandSeed)
	require.Error(t, err)

	var colleges int
	require.NoError(t, dbh.QueryRow(`SELECT COUNT(*) FROM colleges`).Scan(&colleges))
	assert.Equal(t, 32, colleges)
}

func TestReapplyThenInvalidateDropsStaleCandidates(t *testing.T) {
	dbh := dbtest.Open(t)
	ctx := context.Background()
	d, err := Default()
	require.NoError(t, err)
	_, err = Apply(ctx, dbh, d, DefaultRandSeed)
	require.NoError(t, err)

	store := college.NewSQLStore(dbh, db.DriverSQLite)
	svc := college.NewService(store, cache.NewMemory(), time.Hour)
	before, err := svc.Predict(ctx, 500, "general", "jee")
	require.NoError(t, err)
	require.NotEmpty(t, before.Safe)

	_, err = Apply(ctx, dbh, d, DefaultRandSeed)
	require.NoError(t, err)

	// the cache still answers with ids from the first load
	stale, err := svc.Predict(ctx, 500, "general", "jee")
	require.NoError(t, err)
	_, err = store.GetCollege(ctx, stale.Safe[0].ID)
	require.ErrorIs(t, err, college.ErrNotFound)

	require.NoError(t, svc.InvalidateAll(ctx))
	fresh, err := svc.Predict(ctx, 500, "general", "jee")
	require.NoError(t, err)
	assert.Equal(t, len(before.Safe), len(fresh.Safe))
	for _, tier := range [][]college.College{fresh.Safe, fresh.Likely, fresh.Competitive} {
		for _, c := range tier {
			_, err := store.GetCollege(ctx, c.ID)
			assert.NoError(t, err, "college %d (%s)", c.ID, c.ShortName)
		}
	}
}
