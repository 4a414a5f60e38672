package jobs

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/jobs"
	"skillforge-backend/validators"
)

// Листинг вакансий с фильтрами по поиску, локации, типу и тегу
func ListJobs(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	query := db.Model(&jobs.Job{})
	if search := r.URL.Query().Get("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(title) LIKE lower(?) OR lower(company) LIKE lower(?)", pattern, pattern)
	}
	if location := r.URL.Query().Get("location"); location != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+location+"%")
	}
	if jobType := r.URL.Query().Get("type"); jobType != "" {
		query = query.Where("type = ?", jobType)
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		// теги хранятся строкой через запятую
		query = query.Where("lower(tags) LIKE lower(?)", "%"+tag+"%")
	}

	var list []jobs.Job
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list jobs", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", list)
}

// CreateJob: публикация вакансии, требует create_jobs
func CreateJob(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermCreateJobs) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.JobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	job := jobs.Job{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Type:        input.Type,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Description: input.Description,
		Tags:        input.Tags,
		Match:       input.Match,
		PostedByID:  claims.UserID,
	}
	if err := db.Create(&job).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create job", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Job created", job)
}

// Apply: отклик на вакансию. Повторный отклик отклоняется ограничением
// базы, проверки перед вставкой нет - гонки check-then-insert исключены.
func Apply(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermApplyJobs) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.ApplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var job jobs.Job
	if err := db.First(&job, input.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Job not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load job", nil)
		return
	}

	application := jobs.Application{
		UserID: claims.UserID,
		JobID:  job.ID,
		Status: jobs.StatusPending,
	}
	if err := db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Already applied", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to apply", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Application submitted", application)
}

// ListApplications: отклики текущего пользователя
func ListApplications(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var applications []jobs.Application
	if err := db.Preload("Job").Where("user_id = ?", claims.UserID).
		Order("created_at DESC").Find(&applications).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list applications", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", applications)
}

// ToggleSave: закладка вакансии, повторный вызов снимает ее
func ToggleSave(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermSaveJobs) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.SaveJobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var job jobs.Job
	if err := db.First(&job, input.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Job not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load job", nil)
		return
	}

	saved := false
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND job_id = ?", claims.UserID, job.ID).Delete(&jobs.SavedJob{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			record := jobs.SavedJob{UserID: claims.UserID, JobID: job.ID}
			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return nil
				}
				return err
			}
			saved = true
		}
		return nil
	})
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to toggle saved job", nil)
		return
	}

	message := "Job removed from saved"
	if saved {
		message = "Job saved"
	}
	middleware.JsonResponse(w, http.StatusOK, true, message, map[string]bool{"saved": saved})
}

// ListSaved: закладки текущего пользователя
func ListSaved(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var saved []jobs.SavedJob
	if err := db.Preload("Job").Where("user_id = ?", claims.UserID).
		Order("created_at DESC").Find(&saved).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list saved jobs", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", saved)
}
