package community

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/community"
	"skillforge-backend/validators"
)

// CreateComment: комментарий к посту
func CreateComment(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermCommentPosts) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.CommentInput
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

	comment := community.Comment{
		PostID:   post.ID,
		AuthorID: claims.UserID,
		Content:  input.Content,
	}
	if err := db.Create(&comment).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create comment", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Comment created", comment)
}

// DeleteComment: удаляет автор или модератор сообщества
func DeleteComment(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodDelete {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	commentID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid comment ID", nil)
		return
	}

	var comment community.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Comment not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load comment", nil)
		return
	}

	if comment.AuthorID != claims.UserID &&
		!middleware.HasPermission(claims.Role, middleware.PermModerateCommunity) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "You can only delete your own comments", nil)
		return
	}

	if err := db.Delete(&comment).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to delete comment", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Comment deleted", nil)
}
