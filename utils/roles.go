package utils

// HasRole checks if a role tag is present in a user's role set.
// Roles are flat, independent tags with no hierarchy or inheritance;
// holding one role never implies another.
func HasRole(userRoles []string, required string) bool {
	for _, role := range userRoles {
		if role == required {
			return true
		}
	}
	return false
}

// HasAnyRole checks if at least one of the required role tags is present
func HasAnyRole(userRoles []string, required []string) bool {
	for _, req := range required {
		if HasRole(userRoles, req) {
			return true
		}
	}
	return false
}
