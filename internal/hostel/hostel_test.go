package hostel

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
		`INSERT INTO hostels (name, type, location, nearby_colleges, distance, rent, amenities, gender, rating, reviews)
		 VALUES ('Sunrise PG', 'PG', 'Powai, Mumbai', '["IIT Bombay"]', 1.2, 12000, '["WiFi","Mess"]', 'male', 4.5, 120)`,
		`INSERT INTO hostels (name, type, location, nearby_colleges, distance, rent, amenities, gender, rating, reviews)
		 VALUES ('Lotus Residency', 'Hostel', 'Hauz Khas, New Delhi', '["IIT Delhi"]', 0.8, 15000, '[]', 'female', 4.7, 80)`,
		`INSERT INTO hostels (name, type, location, nearby_colleges, distance, rent, amenities, gender, rating, reviews)
		 VALUES ('Campus Flats', 'Flat', 'Powai, Mumbai', '["IIT Bombay"]', 2.0, 9000, '["Kitchen"]', 'unisex', 4.5, 40)`,
	)
	return NewSQLStore(dbh, db.DriverSQLite)
}

func names(hs []Hostel) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name
	}
	return out
}

func TestListOrdering(t *testing.T) {
	got, err := newStore(t).List(context.Background(), ListOpts{})
	require.NoError(t, err)
	// equal ratings break on cheaper rent
	assert.Equal(t, []string{"Lotus Residency", "Campus Flats", "Sunrise PG"}, names(got))
	assert.Equal(t, []string{"WiFi", "Mess"}, []string(got[2].Amenities))
}

func TestListGenderIncludesUnisex(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	male, err := s.List(ctx, ListOpts{Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Campus Flats", "Sunrise PG"}, names(male))

	all, err := s.List(ctx, ListOpts{Gender: "unisex"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListLocationTypeAndRent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	powai, err := s.List(ctx, ListOpts{Location: "powai"})
	require.NoError(t, err)
	assert.Len(t, powai, 2)

	cheap, err := s.List(ctx, ListOpts{Location: "Mumbai", MaxRent: 10000})
	require.NoError(t, err)
	assert.Equal(t, []string{"Campus Flats"}, names(cheap))

	pg, err := s.List(ctx, ListOpts{Type: "PG"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunrise PG"}, names(pg))
}

func TestGet(t *testing.T) {
	s := newStore(t)
	h, err := s.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Lotus Residency", h.Name)
	assert.Empty(t, h.Amenities)

	_, err = s.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
