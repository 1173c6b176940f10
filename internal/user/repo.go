package user

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user already exists")
	ErrLastAdmin  = errors.New("cannot demote the last admin")

	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

type Store interface {
	// Create hashes password and inserts the user. Email is matched
	// case-insensitively; a duplicate returns ErrEmailTaken.
	Create(ctx context.Context, email, password string, name *string, role string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// Upsert creates the user or resets its password, name and role.
	Upsert(ctx context.Context, email, password string, name *string, role string) (u User, created bool, err error)

	// List returns users ordered by email, optionally restricted to one role.
	List(ctx context.Context, role string) ([]User, error)
	SetPassword(ctx context.Context, id int64, password string) error
	// SetRole refuses to demote the only remaining admin (ErrLastAdmin).
	SetRole(ctx context.Context, id int64, role string) (User, error)
}
