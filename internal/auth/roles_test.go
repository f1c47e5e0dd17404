package auth

import "testing"

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role            string
		admin           bool
		reviewerOrAdmin bool
	}{
		{RoleUser, false, false},
		{RoleReviewer, false, true},
		{RoleAdmin, true, true},
		{"", false, false},
		{"superuser", false, false},
	}
	for _, tc := range cases {
		if got := IsAdmin(tc.role); got != tc.admin {
			t.Fatalf("IsAdmin(%q) = %v, want %v", tc.role, got, tc.admin)
		}
		if got := IsReviewerOrAdmin(tc.role); got != tc.reviewerOrAdmin {
			t.Fatalf("IsReviewerOrAdmin(%q) = %v, want %v", tc.role, got, tc.reviewerOrAdmin)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleReviewer, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("ValidRole(%q) = false", role)
		}
	}
	for _, role := range []string{"", "root", "Admin"} {
		if ValidRole(role) {
			t.Fatalf("ValidRole(%q) = true", role)
		}
	}
}
