package auth

const (
	RoleUser     = "user"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

func IsAdmin(role string) bool {
	return role == RoleAdmin
}

func IsReviewerOrAdmin(role string) bool {
	return role == RoleReviewer || role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}
