package uploads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/controllers/authentication"
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
	require.NoError(t, db.AutoMigrate(&users.User{}, &users.Skill{}, &users.UserSkill{}))
	return db
}

func multipartRequest(t *testing.T, token, kind, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("kind", kind))
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestUploadFileUsesConfiguredDir(t *testing.T) {
	db := setupTestDB(t)
	user := users.User{Name: "Test User", Email: "uploader@test.dev", Password: "x", Role: users.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	token, err := authentication.GenerateToken(&user)
	require.NoError(t, err)

	// каталог загрузок лежит вне public/
	config.AppConfig.UploadDir = t.TempDir()

	rec := httptest.NewRecorder()
	UploadFile(rec, multipartRequest(t, token, "avatar", "me.png", []byte("png-bytes")), db)
	require.Equal(t, http.StatusCreated, rec.Code)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	var data struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	// ссылка всегда под публичным префиксом, файл — в настроенном каталоге
	require.True(t, strings.HasPrefix(data.URL, PublicPath), "url %q should start with %q", data.URL, PublicPath)
	fileName := strings.TrimPrefix(data.URL, PublicPath)
	_, err = os.Stat(filepath.Join(config.AppConfig.UploadDir, fileName))
	require.NoError(t, err)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, data.URL, stored.AvatarURL)
}

func TestUploadFileRejectsUnknownKind(t *testing.T) {
	db := setupTestDB(t)
	user := users.User{Name: "Test User", Email: "uploader@test.dev", Password: "x", Role: users.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	token, err := authentication.GenerateToken(&user)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	UploadFile(rec, multipartRequest(t, token, "backup", "dump.sql", []byte("x")), db)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
