package user

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int64   `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password" json:"-"`
	Name         *string `db:"name" json:"name"`
	Role         string  `db:"role" json:"role"`
	CreatedAt    int64   `db:"created_at" json:"created_at"`
	UpdatedAt    int64   `db:"updated_at" json:"updated_at"`
}

// ValidRole reports whether r is a role the service issues.
func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleAdmin
}
