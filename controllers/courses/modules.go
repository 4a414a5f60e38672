package courses

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/courses"
	"skillforge-backend/validators"
)

// CreateModule: добавление раздела в свой курс.
// Позицию внутри курса держит уникальный индекс.
func CreateModule(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermEditCourses) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.ModuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	course, status, msg := loadOwnedCourse(db, input.CourseID, claims)
	if course == nil {
		middleware.JsonResponse(w, status, false, msg, nil)
		return
	}

	module := courses.CourseModule{
		CourseID: course.ID,
		Title:    input.Title,
		Position: input.Position,
	}
	if err := db.Create(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Position already taken in this course", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create module", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Module created", module)
}

// CreateLesson: добавление урока в раздел своего курса
func CreateLesson(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermEditCourses) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.LessonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var module courses.CourseModule
	if err := db.First(&module, input.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Module not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load module", nil)
		return
	}

	course, status, msg := loadOwnedCourse(db, module.CourseID, claims)
	if course == nil {
		middleware.JsonResponse(w, status, false, msg, nil)
		return
	}

	lesson := courses.Lesson{
		ModuleID: module.ID,
		Title:    input.Title,
		Content:  input.Content,
		VideoURL: input.VideoURL,
		Duration: input.Duration,
		Position: input.Position,
	}
	if err := db.Create(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Position already taken in this module", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create lesson", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Lesson created", lesson)
}
