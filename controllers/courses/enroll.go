package courses

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/courses"
	"skillforge-backend/validators"
)

// Enroll: запись на курс. Дубликат ловит уникальный индекс,
// отдельной проверки перед вставкой нет.
func Enroll(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermEnrollCourses) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.EnrollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var course courses.Course
	if err := db.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Course not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load course", nil)
		return
	}

	enrollment := courses.Enrollment{UserID: claims.UserID, CourseID: course.ID}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Already enrolled", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to enroll", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Enrolled successfully", enrollment)
}

// ListEnrollments: курсы текущего пользователя
func ListEnrollments(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var enrollments []courses.Enrollment
	if err := db.Preload("Course").Where("user_id = ?", claims.UserID).
		Order("created_at DESC").Find(&enrollments).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list enrollments", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", enrollments)
}

// CompleteLesson отмечает урок пройденным. Повторный вызов обновляет
// существующую запись, дубликата не появляется.
func CompleteLesson(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var input validators.CompleteLessonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var lesson courses.Lesson
	if err := db.First(&lesson, input.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Lesson not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load lesson", nil)
		return
	}

	now := time.Now().UTC()
	var progress courses.LessonProgress
	err = db.Where("user_id = ? AND lesson_id = ?", claims.UserID, lesson.ID).First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = courses.LessonProgress{
			UserID:      claims.UserID,
			LessonID:    lesson.ID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := db.Create(&progress).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to save progress", nil)
			return
		}
	case err != nil:
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load progress", nil)
		return
	default:
		progress.Completed = true
		progress.CompletedAt = &now
		if err := db.Save(&progress).Error; err != nil {
			middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to save progress", nil)
			return
		}
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Lesson completed", progress)
}
