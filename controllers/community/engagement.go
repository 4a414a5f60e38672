package community

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/community"
	"skillforge-backend/validators"
)

// ToggleLike: лайк поста. Повторный вызов снимает лайк, строка всегда
// одна - дубликаты режет уникальный индекс (post_id, user_id).
func ToggleLike(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermLikePosts) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.LikeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var post community.Post
	if err := db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Post not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load post", nil)
		return
	}

	liked := false
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", post.ID, claims.UserID).Delete(&community.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := community.Like{PostID: post.ID, UserID: claims.UserID}
			if err := tx.Create(&like).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return nil
				}
				return err
			}
			liked = true
		}
		return nil
	})
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to toggle like", nil)
		return
	}

	var likeCount int64
	if err := db.Model(&community.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to count likes", nil)
		return
	}

	message := "Like removed"
	if liked {
		message = "Post liked"
	}
	middleware.JsonResponse(w, http.StatusOK, true, message, map[string]interface{}{
		"liked": liked,
		"likes": likeCount,
	})
}

// SharePost: репост. Репосты не уникальны, каждый учитывается.
func SharePost(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermSharePosts) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.ShareInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var post community.Post
	if err := db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Post not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load post", nil)
		return
	}

	share := community.Share{PostID: post.ID, UserID: claims.UserID}
	if err := db.Create(&share).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to share post", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Post shared", share)
}
