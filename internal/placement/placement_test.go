package placement

import (
	"context"
	"encoding/json"
	"fmt"
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
		`INSERT INTO colleges (id, name, short_name, location, state, type, ranking) VALUES (1, 'IIT Bombay', 'IITB', 'Mumbai', 'Maharashtra', 'IIT', 1)`,
		`INSERT INTO colleges (id, name, short_name, location, state, type, ranking) VALUES (2, 'NIT Trichy', 'NITT', 'Trichy', 'Tamil Nadu', 'NIT', 9)`,

		`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package) VALUES (1, 2023, 'IT/Software', 'Google', 10, 2000000, 4000000)`,
		`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package) VALUES (1, 2024, 'IT/Software', 'Google', 30, 2500000, 5000000)`,
		`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package) VALUES (1, 2024, 'Finance', 'Goldman Sachs', 20, 2340000, 3000000)`,
		`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package) VALUES (2, 2024, 'IT/Software', 'Google', 10, 1500000, 2000000)`,
		`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package) VALUES (2, 2024, 'Core Engineering', 'L&T', 40, 800000, 1200000)`,
	)
	return NewSQLStore(dbh, db.DriverSQLite)
}

func TestStats(t *testing.T) {
	st, err := newStore(t).Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, st.AvgPackages, 2)
	assert.Equal(t, "2023", st.AvgPackages[0].Year)
	assert.Equal(t, map[string]int{"IIT": 20}, st.AvgPackages[0].ByType)
	// IIT 2024: (25L + 23.4L) / 2 = 24.2L
	assert.Equal(t, map[string]int{"IIT": 24, "NIT": 12}, st.AvgPackages[1].ByType)

	// 2024 offers: IT 40, Core 40, Finance 20
	require.Len(t, st.SectorDistribution, 3)
	assert.Equal(t, SectorShare{Name: "Core Engineering", Value: 40, Color: "hsl(234, 89%, 54%)"}, st.SectorDistribution[0])
	assert.Equal(t, SectorShare{Name: "IT/Software", Value: 40, Color: "hsl(166, 76%, 42%)"}, st.SectorDistribution[1])
	assert.Equal(t, SectorShare{Name: "Finance", Value: 20, Color: "hsl(38, 92%, 50%)"}, st.SectorDistribution[2])

	require.Len(t, st.TopRecruiters, 3)
	assert.Equal(t, Recruiter{Name: "Google", Offers: 40, AvgPackage: 20}, st.TopRecruiters[0])
	assert.Equal(t, Recruiter{Name: "L&T", Offers: 40, AvgPackage: 8}, st.TopRecruiters[1])
}

func TestStatsEmpty(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, st.AvgPackages)
	assert.Empty(t, st.SectorDistribution)
	assert.Empty(t, st.TopRecruiters)
}

func TestTopRecruitersCapped(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 15; i++ {
		_, err := s.db.Exec(`INSERT INTO placements (college_id, year, sector, company, offers, avg_package, highest_package)
			VALUES (2, 2024, 'Others', $1, 1, 500000, 600000)`, fmt.Sprintf("Startup %02d", i))
		require.NoError(t, err)
	}
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Len(t, st.TopRecruiters, 10)
}

func TestYearPackagesEncodesFlat(t *testing.T) {
	raw, err := json.Marshal(YearPackages{Year: "2024", ByType: map[string]int{"IIT": 21}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":"2024","IIT":21}`, string(raw))
}

func TestListByCollege(t *testing.T) {
	got, err := newStore(t).ListByCollege(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, "Google", got[0].Company)
	assert.Equal(t, 2023, got[2].Year)

	none, err := newStore(t).ListByCollege(context.Background(), 77)
	require.NoError(t, err)
	assert.Empty(t, none)
}
