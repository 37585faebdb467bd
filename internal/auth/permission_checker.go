package auth

import (
	"context"

	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
)

// RoleChecker decides whether a principal holds one of the allowed roles.
type RoleChecker interface {
	HasAnyRole(ctx context.Context, u *User, allowed []coreuser.Role) (bool, error)
}

type DefaultRoleChecker struct{}

func NewRoleChecker() RoleChecker {
	return &DefaultRoleChecker{}
}

func (c *DefaultRoleChecker) HasAnyRole(_ context.Context, u *User, allowed []coreuser.Role) (bool, error) {
	if u == nil {
		return false, nil
	}
	return u.HasRole(allowed...), nil
}
