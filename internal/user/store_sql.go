package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/db"
)

const userColumns = `id, email, password, name, role, created_at, updated_at`

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(dbh *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(dbh, driver.SQLName())}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *SQLStore) Create(ctx context.Context, email, password string, name *string, role string) (User, error) {
	if role == "" {
		role = RoleStudent
	}
	if !ValidRole(role) {
		return User{}, errors.Errorf("user: invalid role %q", role)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().Unix(),
	}
	u.UpdatedAt = u.CreatedAt

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, name, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`,
		u.Email, u.PasswordHash, u.Name, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrEmailTaken
	}
	if err != nil {
		return User{}, errors.Wrap(err, "user: create")
	}
	return u, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrapf(err, "user: get %d", id)
	}
	return u, nil
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "user: get by email")
	}
	return u, nil
}

func (s *SQLStore) Upsert(ctx context.Context, email, password string, name *string, role string) (User, bool, error) {
	if role == "" {
		role = RoleStudent
	}
	u, err := s.Create(ctx, email, password, name, role)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, ErrEmailTaken) {
		return User{}, false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, false, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET password = $1, name = $2, role = $3, updated_at = $4 WHERE email = $5`,
		hash, name, role, time.Now().Unix(), normalizeEmail(email))
	if err != nil {
		return User{}, false, errors.Wrap(err, "user: update")
	}
	u, err = s.GetByEmail(ctx, email)
	return u, false, err
}

func (s *SQLStore) List(ctx context.Context, role string) ([]User, error) {
	q := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if role = strings.TrimSpace(role); role != "" {
		q += ` WHERE role = $1`
		args = append(args, role)
	}
	q += ` ORDER BY email`

	out := []User{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "user: list")
	}
	return out, nil
}

func (s *SQLStore) SetPassword(ctx context.Context, id int64, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`, hash, time.Now().Unix(), id)
	if err != nil {
		return errors.Wrapf(err, "user: set password %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) SetRole(ctx context.Context, id int64, role string) (User, error) {
	if !ValidRole(role) {
		return User{}, errors.Errorf("user: invalid role %q", role)
	}
	err := db.WithTx(ctx, s.db.DB, nil, func(tx *sql.Tx) error {
		var cur string
		err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&cur)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "user: get role %d", id)
		}
		if cur == RoleAdmin && role != RoleAdmin {
			var admins int
			if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE role = $1`, RoleAdmin).Scan(&admins); err != nil {
				return errors.Wrap(err, "user: count admins")
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`, role, time.Now().Unix(), id)
		return errors.Wrapf(err, "user: set role %d", id)
	})
	if err != nil {
		return User{}, err
	}
	return s.GetByID(ctx, id)
}
