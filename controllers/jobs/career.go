package jobs

import (
	"net/http"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/jobs"
	"skillforge-backend/models/users"
	"skillforge-backend/services"
)

// CareerOverview собирает карьерную сводку пользователя: оценку резюме,
// среднее соответствие по вакансиям и пробелы в навыках. Значения
// считаются заново на каждый запрос и нигде не сохраняются.
func CareerOverview(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var skills []users.UserSkill
	if err := db.Preload("Skill").Where("user_id = ?", claims.UserID).Find(&skills).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load skills", nil)
		return
	}

	var matches []int
	if err := db.Model(&jobs.Job{}).Pluck("match", &matches).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load jobs", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"atsScore":     services.ATSScore(len(skills)),
		"averageMatch": services.AverageMatch(matches),
		"skillGaps":    services.SkillGaps(skills),
		"skillCount":   len(skills),
	})
}
