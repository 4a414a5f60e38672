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
	"skillforge-backend/models/users"
	"skillforge-backend/validators"
)

// Листинг курсов с фильтрами по категории, поиску и преподавателю
func ListCourses(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	query := db.Model(&courses.Course{})
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(title) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern)
	}
	if instructor := r.URL.Query().Get("instructor_id"); instructor != "" {
		query = query.Where("instructor_id = ?", instructor)
	}

	var list []courses.Course
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list courses", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", list)
}

// CreateCourse: создание курса, требует create_courses
func CreateCourse(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
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

	var input validators.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	course := courses.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		InstructorID: claims.UserID,
	}
	if err := db.Create(&course).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create course", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Course created", course)
}

// Курс может менять только его преподаватель или админ
func loadOwnedCourse(db *gorm.DB, courseID uint, claims *authentication.Claims) (*courses.Course, int, string) {
	var course courses.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, "Course not found"
		}
		return nil, http.StatusInternalServerError, "Failed to load course"
	}
	if course.InstructorID != claims.UserID && claims.Role != users.RoleAdmin {
		return nil, http.StatusForbidden, "You can only manage your own courses"
	}
	return &course, 0, ""
}

// UpdateCourse: обновление своего курса
func UpdateCourse(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPut {
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

	courseID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid course ID", nil)
		return
	}

	course, status, msg := loadOwnedCourse(db, uint(courseID), claims)
	if course == nil {
		middleware.JsonResponse(w, status, false, msg, nil)
		return
	}

	var input validators.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Price = input.Price
	if err := db.Save(course).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to update course", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Course updated", course)
}

// DeleteCourse: удаление своего курса
func DeleteCourse(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodDelete {
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

	courseID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid course ID", nil)
		return
	}

	course, status, msg := loadOwnedCourse(db, uint(courseID), claims)
	if course == nil {
		middleware.JsonResponse(w, status, false, msg, nil)
		return
	}

	if err := db.Unscoped().Delete(course).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to delete course", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Course deleted", nil)
}

// GetCourseDetail отдает курс с разделами и уроками, прогресс текущего
// пользователя и похожие курсы той же категории.
func GetCourseDetail(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid course ID", nil)
		return
	}

	var course courses.Course
	err = db.Preload("Modules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Preload("Modules.Lessons", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Course not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load course", nil)
		return
	}

	// Прогресс только для аутентифицированных, для гостей список пуст
	userProgress := []courses.LessonProgress{}
	if claims, err := authentication.ValidateToken(r); err == nil {
		lessonIDs := []uint{}
		for _, m := range course.Modules {
			for _, l := range m.Lessons {
				lessonIDs = append(lessonIDs, l.ID)
			}
		}
		if len(lessonIDs) > 0 {
			if err := db.Where("user_id = ? AND lesson_id IN ?", claims.UserID, lessonIDs).
				Find(&userProgress).Error; err != nil {
				middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load progress", nil)
				return
			}
		}
	}

	var related []courses.Course
	if err := db.Where("category = ? AND id <> ?", course.Category, course.ID).
		Order("created_at DESC").Limit(4).Find(&related).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load related courses", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"course":             course,
		"modulesWithLessons": course.Modules,
		"userProgress":       userProgress,
		"relatedCourses":     related,
	})
}
