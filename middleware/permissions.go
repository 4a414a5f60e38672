package middleware

import (
	"skillforge-backend/models/users"
)

// Токены разрешений для закрытых действий
const (
	PermEnrollCourses     = "enroll_courses"
	PermReviewCourses     = "review_courses"
	PermCreateCourses     = "create_courses"
	PermEditCourses       = "edit_courses"
	PermApplyJobs         = "apply_jobs"
	PermSaveJobs          = "save_jobs"
	PermCreateJobs        = "create_jobs"
	PermCreatePosts       = "create_posts"
	PermCommentPosts      = "comment_posts"
	PermLikePosts         = "like_posts"
	PermSharePosts        = "share_posts"
	PermModerateCommunity = "moderate_community"
	PermManageUsers       = "manage_users"
)

// Статическая таблица роль -> разрешения. Admin получает все разрешения.
var rolePermissions = map[string][]string{
	users.RoleStudent: {
		PermEnrollCourses,
		PermReviewCourses,
		PermApplyJobs,
		PermSaveJobs,
		PermCreatePosts,
		PermCommentPosts,
		PermLikePosts,
		PermSharePosts,
	},
	users.RoleInstructor: {
		PermEnrollCourses,
		PermReviewCourses,
		PermApplyJobs,
		PermSaveJobs,
		PermCreatePosts,
		PermCommentPosts,
		PermLikePosts,
		PermSharePosts,
		PermCreateCourses,
		PermEditCourses,
	},
}

// HasPermission проверяет, разрешено ли действие для роли.
// Неизвестная или пустая роль не получает ничего.
func HasPermission(role, permission string) bool {
	if role == users.RoleAdmin {
		return true
	}
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
