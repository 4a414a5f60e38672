package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillforge-backend/models/users"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		permission string
		want       bool
	}{
		{"student cannot create courses", users.RoleStudent, PermCreateCourses, false},
		{"student can enroll", users.RoleStudent, PermEnrollCourses, true},
		{"student can apply to jobs", users.RoleStudent, PermApplyJobs, true},
		{"student cannot moderate", users.RoleStudent, PermModerateCommunity, false},
		{"instructor can create courses", users.RoleInstructor, PermCreateCourses, true},
		{"instructor can edit courses", users.RoleInstructor, PermEditCourses, true},
		{"instructor cannot manage users", users.RoleInstructor, PermManageUsers, false},
		{"admin gets everything", users.RoleAdmin, PermCreateCourses, true},
		{"admin can moderate", users.RoleAdmin, PermModerateCommunity, true},
		{"admin can manage users", users.RoleAdmin, PermManageUsers, true},
		{"empty role denied", "", PermEnrollCourses, false},
		{"unknown role denied", "ghost", PermLikePosts, false},
		{"unknown permission denied", users.RoleStudent, "fly_to_moon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

// Аноним без роли не проходит ни один закрытый токен
func TestAnonymousDeniedEverything(t *testing.T) {
	gated := []string{
		PermEnrollCourses, PermReviewCourses, PermCreateCourses, PermEditCourses,
		PermApplyJobs, PermSaveJobs, PermCreateJobs, PermCreatePosts,
		PermCommentPosts, PermLikePosts, PermSharePosts,
		PermModerateCommunity, PermManageUsers,
	}
	for _, perm := range gated {
		assert.False(t, HasPermission("", perm), perm)
	}
}
