package domain

const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// User models the authenticated account as returned by GET /auth/me.
// The remote API owns the record; this client never mutates it.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleProvider
}
