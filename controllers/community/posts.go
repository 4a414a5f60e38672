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
	"skillforge-backend/services"
	"skillforge-backend/validators"
)

type postWithCounts struct {
	community.Post
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// Листинг постов со счетчиками вовлеченности, фильтры по категории и тегу
func ListPosts(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	query := db.Model(&community.Post{}).Preload("Author").Preload("Tags")
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var posts []community.Post
	if err := query.Order("posts.created_at DESC").Find(&posts).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list posts", nil)
		return
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := services.PostEngagement(db, ids)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to count engagement", nil)
		return
	}

	result := make([]postWithCounts, 0, len(posts))
	for _, p := range posts {
		c := counts[p.ID]
		result = append(result, postWithCounts{Post: p, Likes: c.Likes, Comments: c.Comments, Shares: c.Shares})
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", result)
}

// CreatePost: создание поста, теги нормализуются в таблицу tags
func CreatePost(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}
	if !middleware.HasPermission(claims.Role, middleware.PermCreatePosts) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "Insufficient permissions", nil)
		return
	}

	var input validators.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	post := community.Post{
		AuthorID: claims.UserID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, name := range input.Tags {
			var tag community.Tag
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				tag = community.Tag{Name: name}
				if err := tx.Create(&tag).Error; err != nil {
					return err
				}
			}
			post.Tags = append(post.Tags, tag)
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to create post", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "Post created", post)
}

// GetPostDetail: пост с автором, тегами, комментариями и счетчиками
func GetPostDetail(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	postID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid post ID", nil)
		return
	}

	var post community.Post
	if err := db.Preload("Author").Preload("Tags").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Post not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load post", nil)
		return
	}

	var comments []community.Comment
	if err := db.Preload("Author").Where("post_id = ?", post.ID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load comments", nil)
		return
	}

	counts, err := services.PostEngagement(db, []uint{post.ID})
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to count engagement", nil)
		return
	}
	c := counts[post.ID]

	middleware.JsonResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"post":     postWithCounts{Post: post, Likes: c.Likes, Comments: c.Comments, Shares: c.Shares},
		"comments": comments,
	})
}

// DeletePost: удаляет автор или модератор сообщества
func DeletePost(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodDelete {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	postID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid post ID", nil)
		return
	}

	var post community.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(w, http.StatusNotFound, false, "Post not found", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to load post", nil)
		return
	}

	if post.AuthorID != claims.UserID &&
		!middleware.HasPermission(claims.Role, middleware.PermModerateCommunity) {
		middleware.JsonResponse(w, http.StatusForbidden, false, "You can only delete your own posts", nil)
		return
	}

	if err := db.Unscoped().Delete(&post).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to delete post", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "Post deleted", nil)
}

// ListTags: все теги сообщества
func ListTags(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodGet {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	var tags []community.Tag
	if err := db.Order("name ASC").Find(&tags).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to list tags", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusOK, true, "", tags)
}
