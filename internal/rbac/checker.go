package rbac

import (
	"context"
	"strings"
)

// Checker resolves a role's grants. A grant is an exact permission, a
// "scope:*" pattern covering every permission in that scope, or "*".
type Checker struct {
	grants map[string][]string
}

// NewChecker uses RolePermissions when grants is nil.
func NewChecker(grants map[string][]string) *Checker {
	if grants == nil {
		grants = RolePermissions
	}
	return &Checker{grants: grants}
}

func (c *Checker) Has(role, perm string) bool {
	for _, g := range c.grants[role] {
		if grants(g, perm) {
			return true
		}
	}
	return false
}

func grants(grant, perm string) bool {
	switch {
	case grant == "*", grant == perm:
		return true
	case strings.HasSuffix(grant, ":*"):
		return strings.HasPrefix(perm, strings.TrimSuffix(grant, "*"))
	default:
		return false
	}
}

type ctxKey struct{}

// WithRole stores the caller's effective role; JWTMiddleware sets it from the
// token and AttachRoleFromDB overrides it with the stored role.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ctxKey{}).(string)
	return role
}
