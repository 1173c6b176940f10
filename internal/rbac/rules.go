package rbac

import "github.com/eduvate/eduvate-api/internal/user"

const (
	PermProfileView     = "account:profile"
	PermPasswordChange  = "account:password"
	PermCutoffWrite     = "cutoff:write"
	PermUploadRead      = "upload:read"
	PermUsersList       = "users:list"
	PermUsersUpdateRole = "users:update_role"
)

var RolePermissions = map[string][]string{
	user.RoleStudent: {"account:*"},
	user.RoleAdmin:   {"*"},
}
