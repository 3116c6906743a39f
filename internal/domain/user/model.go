package user

import "slices"

const RoleAdmin = "admin"

// Principal is the authenticated caller as resolved from the access token.
type Principal struct {
	UserID      string
	DisplayName string
	Roles       []string
}

func (p Principal) IsAdmin() bool {
	return slices.Contains(p.Roles, RoleAdmin)
}
