package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/db/dbtest"
)

func strp(s string) *string { return &s }

func TestCreateAndLookup(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	ctx := context.Background()

	u, err := s.Create(ctx, " Asha@Example.com ", "hunter22", strp("Asha"), "")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, RoleStudent, u.Role)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	got, err := s.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.CheckPassword("hunter22"))
	assert.False(t, got.CheckPassword("hunter23"))

	byID, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.Name)
	assert.Equal(t, "Asha", *byID.Name)

	_, err = s.Create(ctx, "asha@example.com", "other", nil, "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLookupMissing(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	_, err := s.GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	_, err := s.Create(context.Background(), "x@example.com", "pw", nil, "counsellor")
	assert.Error(t, err)
}

func TestUpsertPromotesExistingUser(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	ctx := context.Background()

	u, created, err := s.Upsert(ctx, "ops@example.com", "first", nil, RoleStudent)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.Upsert(ctx, "ops@example.com", "second", strp("Ops"), RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, RoleAdmin, again.Role)
	assert.True(t, again.CheckPassword("second"))
}

func TestSetRoleGuardsLastAdmin(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	ctx := context.Background()

	admin, err := s.Create(ctx, "root@example.com", "pw", nil, RoleAdmin)
	require.NoError(t, err)
	student, err := s.Create(ctx, "kid@example.com", "pw", nil, "")
	require.NoError(t, err)

	_, err = s.SetRole(ctx, admin.ID, RoleStudent)
	assert.ErrorIs(t, err, ErrLastAdmin)

	promoted, err := s.SetRole(ctx, student.ID, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, promoted.Role)

	demoted, err := s.SetRole(ctx, admin.ID, RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, demoted.Role)

	_, err = s.SetRole(ctx, 999, RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)

	admins, err := s.List(ctx, RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "kid@example.com", admins[0].Email)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetPassword(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	ctx := context.Background()
	u, err := s.Create(ctx, "pw@example.com", "old", nil, "")
	require.NoError(t, err)

	require.NoError(t, s.SetPassword(ctx, u.ID, "new"))
	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.CheckPassword("new"))
	assert.False(t, got.CheckPassword("old"))

	assert.ErrorIs(t, s.SetPassword(ctx, 404, "x"), ErrNotFound)
}

func TestPasswordByteLimit(t *testing.T) {
	s := NewSQLStore(dbtest.Open(t), db.DriverSQLite)
	ctx := context.Background()

	_, err := s.Create(ctx, "max@example.com", strings.Repeat("a", MaxPasswordBytes), nil, "")
	require.NoError(t, err)

	_, err = s.Create(ctx, "long@example.com", strings.Repeat("a", MaxPasswordBytes+1), nil, "")
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	// 40 runes but 80 bytes
	_, err = s.Create(ctx, "wide@example.com", strings.Repeat("é", 40), nil, "")
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	u, err := s.GetByEmail(ctx, "max@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetPassword(ctx, u.ID, strings.Repeat("b", 100)), ErrPasswordTooLong)
}
