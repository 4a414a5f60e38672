package community

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/controllers/authentication"
	"skillforge-backend/models/community"
	"skillforge-backend/models/users"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &users.Skill{}, &users.UserSkill{},
		&community.Post{}, &community.Comment{}, &community.Like{},
		&community.Share{}, &community.Tag{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) (*users.User, string) {
	t.Helper()
	user := users.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	token, err := authentication.GenerateToken(&user)
	require.NoError(t, err)
	return &user, token
}

func authedJSONRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func likeCount(t *testing.T, db *gorm.DB, postID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&community.Like{}).Where("post_id = ?", postID).Count(&count).Error)
	return count
}

func TestToggleLikeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	author, _ := createUser(t, db, "author@test.dev", users.RoleStudent)
	_, token := createUser(t, db, "liker@test.dev", users.RoleStudent)

	post := community.Post{AuthorID: author.ID, Title: "Hello", Content: "World"}
	require.NoError(t, db.Create(&post).Error)

	payload := map[string]uint{"postId": post.ID}
	baseline := likeCount(t, db, post.ID)

	// первый вызов ставит лайк
	rec := httptest.NewRecorder()
	ToggleLike(rec, authedJSONRequest(t, http.MethodPost, "/likes/toggle", token, payload), db)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, baseline+1, likeCount(t, db, post.ID))

	var data struct {
		Liked bool  `json:"liked"`
		Likes int64 `json:"likes"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Liked)
	assert.Equal(t, baseline+1, data.Likes)

	// второй вызов снимает лайк, счетчик возвращается к исходному
	rec = httptest.NewRecorder()
	ToggleLike(rec, authedJSONRequest(t, http.MethodPost, "/likes/toggle", token, payload), db)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, baseline, likeCount(t, db, post.ID))

	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Liked)
	assert.Equal(t, baseline, data.Likes)
}

func TestCreatePostNormalizesTags(t *testing.T) {
	db := setupTestDB(t)
	_, token := createUser(t, db, "author@test.dev", users.RoleStudent)

	payload := map[string]interface{}{
		"title":   "Learning Go",
		"content": "Any tips?",
		"tags":    []string{"golang", "career"},
	}

	rec := httptest.NewRecorder()
	CreatePost(rec, authedJSONRequest(t, http.MethodPost, "/posts/create", token, payload), db)
	require.Equal(t, http.StatusCreated, rec.Code)

	// повторное использование тега не создает дубликата
	payload["title"] = "More Go"
	rec = httptest.NewRecorder()
	CreatePost(rec, authedJSONRequest(t, http.MethodPost, "/posts/create", token, payload), db)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tagCount int64
	require.NoError(t, db.Model(&community.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount)
}

func TestDeletePostOwnership(t *testing.T) {
	db := setupTestDB(t)
	author, _ := createUser(t, db, "author@test.dev", users.RoleStudent)
	_, strangerToken := createUser(t, db, "stranger@test.dev", users.RoleStudent)
	_, adminToken := createUser(t, db, "admin@test.dev", users.RoleAdmin)

	post := community.Post{AuthorID: author.ID, Title: "Hello", Content: "World"}
	require.NoError(t, db.Create(&post).Error)
	target := fmt.Sprintf("/posts/delete?id=%d", post.ID)

	// чужой пост удалить нельзя
	rec := httptest.NewRecorder()
	DeletePost(rec, authedJSONRequest(t, http.MethodDelete, target, strangerToken, nil), db)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// модератор сообщества может
	rec = httptest.NewRecorder()
	DeletePost(rec, authedJSONRequest(t, http.MethodDelete, target, adminToken, nil), db)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Unscoped().Model(&community.Post{}).Where("id = ?", post.ID).Count(&count)
	assert.Zero(t, count)
}

func TestListPostsWithEngagement(t *testing.T) {
	db := setupTestDB(t)
	author, _ := createUser(t, db, "author@test.dev", users.RoleStudent)
	reader, _ := createUser(t, db, "reader@test.dev", users.RoleStudent)

	post := community.Post{AuthorID: author.ID, Title: "Hello", Content: "World"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&community.Like{PostID: post.ID, UserID: reader.ID}).Error)
	require.NoError(t, db.Create(&community.Comment{PostID: post.ID, AuthorID: reader.ID, Content: "Hi"}).Error)

	rec := httptest.NewRecorder()
	ListPosts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil), db)
	require.Equal(t, http.StatusOK, rec.Code)

	var data []struct {
		ID       uint  `json:"id"`
		Likes    int64 `json:"likes"`
		Comments int64 `json:"comments"`
		Shares   int64 `json:"shares"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, post.ID, data[0].ID)
	assert.Equal(t, int64(1), data[0].Likes)
	assert.Equal(t, int64(1), data[0].Comments)
	assert.Zero(t, data[0].Shares)
}

func TestCommentRequiresExistingPost(t *testing.T) {
	db := setupTestDB(t)
	_, token := createUser(t, db, "author@test.dev", users.RoleStudent)

	rec := httptest.NewRecorder()
	CreateComment(rec, authedJSONRequest(t, http.MethodPost, "/comments/create", token, map[string]interface{}{
		"postId":  999,
		"content": "Hello?",
	}), db)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
