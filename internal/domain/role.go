package domain

// Role represents the role claim carried by the session token.
type Role string

// List of known roles
const (
	RoleAdmin   Role = "admin"
	RoleLivreur Role = "livreur"
)

// HomePath returns the landing route for the role. Unknown roles land
// on the public home page.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleLivreur:
		return "/livreur"
	default:
		return "/"
	}
}
