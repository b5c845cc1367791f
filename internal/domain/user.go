package domain

import (
	"fmt"
	"strings"
)

// Role is a stored authorization role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts a role name in any case.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleUser, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: invalid role %q; allowed values: USER, ADMIN", ErrValidation, raw)
}

// User is an account that can obtain access tokens.
type User struct {
	Username     string
	PasswordHash string
	Roles        []Role
}

// HasRole reports whether the user carries any of the given roles.
func (u User) HasRole(roles ...Role) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
