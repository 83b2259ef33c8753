package domain

// rolePrecedence orders roles for primary-role resolution only.
// It is never an authorization decision by itself.
var rolePrecedence = []Role{RoleAdmin, RoleServiceProvider, RoleUser}

// PrimaryRole resolves the highest-precedence role a user holds,
// used to pick a default dashboard. Empty string when no roles.
func PrimaryRole(roles []Role) Role {
	for _, p := range rolePrecedence {
		for _, r := range roles {
			if r == p {
				return p
			}
		}
	}
	return ""
}

// DashboardPath maps a primary role to its default dashboard route.
// Unknown or empty roles land on the home page.
func DashboardPath(primary Role) string {
	switch primary {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleServiceProvider:
		return "/provider/dashboard"
	case RoleUser:
		return "/user/dashboard"
	default:
		return "/"
	}
}

// HasRole reports whether the role set contains r.
func HasRole(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

// AnyRole reports whether the two role sets intersect.
func AnyRole(roles, accepted []Role) bool {
	for _, a := range accepted {
		if HasRole(roles, a) {
			return true
		}
	}
	return false
}
