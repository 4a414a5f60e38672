package courses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/courses"
	"skillforge-backend/services"
	"skillforge-backend/validators"
)

// CreateReview: отзыв о курсе, только для записанных на него.
// Один отзыв на пару (user, course), дубликат режет индекс.
func CreateReview(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermReviewCourses) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var enrollment courses.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", claims.UserID, input.CourseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusForbidden, false, "You must be enrolled to review this course", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to check enrollment", nil)
		return
	}

	review := courses.Review{
		CourseID: input.CourseID,
		UserID:   claims.UserID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Already reviewed", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create review", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Review created", review)
}

// ListReviews: отзывы курса
func ListReviews(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid course ID", nil)
		return
	}

	var reviews []courses.Review
	if err := db.Where("course_id = ?", courseID).Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list reviews", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", reviews)
}

// GetInstructorStats: сводка текущего преподавателя - средний рейтинг,
// студенты и отзывы по всем его курсам. Считается на каждый запрос.
func GetInstructorStats(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermCreateCourses) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	stats, err := services.ComputeInstructorStats(db, claims.UserID)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to compute stats", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", stats)
}
