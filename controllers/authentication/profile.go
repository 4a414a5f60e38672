package authentication

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skillforge-backend/middleware"
	"skillforge-backend/models/users"
	"skillforge-backend/validators"
)

// GetProfile: профиль текущего пользователя с навыками
func GetProfile(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var user users.User
	if err := db.Preload("Skills.Skill").First(&user, claims.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusNotFound, false, "User not found", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", user)
}

// UpdateProfile: обновление полей профиля и набора навыков
func UpdateProfile(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var input validators.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var user users.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusNotFound, false, "User not found", nil)
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	user.Headline = input.Headline
	user.City = input.City

	err = db.Transaction(func(tx *gorm.DB) error {
		if input.Skills != nil {
			// Набор навыков заменяется целиком
			if err := tx.Where("user_id = ?", user.ID).Delete(&users.UserSkill{}).Error; err != nil {
				return err
			}
			for _, s := range input.Skills {
				var skill users.Skill
				if err := tx.Where("name = ?", s.Name).First(&skill).Error; err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}
					skill = users.Skill{Name: s.Name}
					if err := tx.Create(&skill).Error; err != nil {
						return err
					}
				}
				level := s.Level
				if level == "" {
					level = users.LevelBeginner
				}
				userSkill := users.UserSkill{UserID: user.ID, SkillID: skill.ID, Level: level}
				if err := tx.Create(&userSkill).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error updating profile", nil)
		return
	}

	if err := db.Preload("Skills.Skill").First(&user, user.ID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error loading profile", nil)
		return
	}
	middleware.JsonResponse(w, http.StatusOK, true, "Profile updated", user)
}

// ChangePassword: смена пароля с проверкой текущего
func ChangePassword(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	var input validators.ChangePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var user users.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusNotFound, false, "User not found", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Current password is incorrect", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error hashing new password", nil)
		return
	}

	user.Password = string(hashed)
	if err := db.Save(&user).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error updating password", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Password changed successfully", nil)
}

// DeleteAccount: удаление аккаунта. Жесткое удаление, каскады базы
// забирают записи, прогресс, отклики, посты и прочее без сирот.
func DeleteAccount(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodDelete {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	if err := db.Unscoped().Delete(&users.User{}, claims.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error deleting account", nil)
		return
	}

	clearSessionCookie(w)
	middleware.JsonResponse(w, http.StatusOK, true, "Account deleted", nil)
}

// AssignRole: смена роли пользователя, только для manage_users
func AssignRole(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermManageUsers) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.AssignRoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var user users.User
	if err := db.First(&user, input.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusNotFound, false, "User not found", nil)
		return
	}

	user.Role = input.Role
	if err := db.Save(&user).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error updating role", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Role updated", user)
}
