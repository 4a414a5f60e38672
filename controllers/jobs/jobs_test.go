package jobs

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
	"skillforge-backend/models/jobs"
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
		&jobs.Job{}, &jobs.Application{}, &jobs.SavedJob{},
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

func TestApplyDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := createUser(t, db, "admin@test.dev", users.RoleAdmin)
	_, token := createUser(t, db, "student@test.dev", users.RoleStudent)

	job := jobs.Job{Title: "Go Developer", Company: "Acme", PostedByID: admin.ID, Match: 85}
	require.NoError(t, db.Create(&job).Error)

	payload := map[string]uint{"jobId": job.ID}

	rec := httptest.NewRecorder()
	Apply(rec, authedJSONRequest(t, http.MethodPost, "/jobs/apply", token, payload), db)
	require.Equal(t, http.StatusCreated, rec.Code)

	// повторный отклик отклоняется, второй строки нет
	rec = httptest.NewRecorder()
	Apply(rec, authedJSONRequest(t, http.MethodPost, "/jobs/apply", token, payload), db)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already applied", decodeEnvelope(t, rec).Message)

	var count int64
	require.NoError(t, db.Model(&jobs.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyRequiresAuthentication(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := createUser(t, db, "admin@test.dev", users.RoleAdmin)
	job := jobs.Job{Title: "Go Developer", Company: "Acme", PostedByID: admin.ID}
	require.NoError(t, db.Create(&job).Error)

	rec := httptest.NewRecorder()
	Apply(rec, authedJSONRequest(t, http.MethodPost, "/jobs/apply", "", map[string]uint{"jobId": job.ID}), db)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var count int64
	require.NoError(t, db.Model(&jobs.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyUnknownJob(t *testing.T) {
	db := setupTestDB(t)
	_, token := createUser(t, db, "student@test.dev", users.RoleStudent)

	rec := httptest.NewRecorder()
	Apply(rec, authedJSONRequest(t, http.MethodPost, "/jobs/apply", token, map[string]uint{"jobId": 999}), db)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJobRequiresPermission(t *testing.T) {
	db := setupTestDB(t)
	_, studentToken := createUser(t, db, "student@test.dev", users.RoleStudent)
	_, adminToken := createUser(t, db, "admin@test.dev", users.RoleAdmin)

	payload := map[string]interface{}{
		"title":   "Platform Engineer",
		"company": "Acme",
		"match":   75,
	}

	rec := httptest.NewRecorder()
	CreateJob(rec, authedJSONRequest(t, http.MethodPost, "/jobs/create", studentToken, payload), db)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	CreateJob(rec, authedJSONRequest(t, http.MethodPost, "/jobs/create", adminToken, payload), db)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestToggleSave(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := createUser(t, db, "admin@test.dev", users.RoleAdmin)
	_, token := createUser(t, db, "student@test.dev", users.RoleStudent)

	job := jobs.Job{Title: "Go Developer", Company: "Acme", PostedByID: admin.ID}
	require.NoError(t, db.Create(&job).Error)

	payload := map[string]uint{"jobId": job.ID}

	rec := httptest.NewRecorder()
	ToggleSave(rec, authedJSONRequest(t, http.MethodPost, "/jobs/save", token, payload), db)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&jobs.SavedJob{}).Where("job_id = ?", job.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// повторный вызов снимает закладку
	rec = httptest.NewRecorder()
	ToggleSave(rec, authedJSONRequest(t, http.MethodPost, "/jobs/save", token, payload), db)
	require.Equal(t, http.StatusOK, rec.Code)

	db.Model(&jobs.SavedJob{}).Where("job_id = ?", job.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCareerOverview(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := createUser(t, db, "admin@test.dev", users.RoleAdmin)
	student, token := createUser(t, db, "student@test.dev", users.RoleStudent)

	require.NoError(t, db.Create(&jobs.Job{Title: "A", Company: "X", PostedByID: admin.ID, Match: 70}).Error)
	require.NoError(t, db.Create(&jobs.Job{Title: "B", Company: "Y", PostedByID: admin.ID, Match: 90}).Error)

	goSkill := users.Skill{Name: "Go"}
	require.NoError(t, db.Create(&goSkill).Error)
	sqlSkill := users.Skill{Name: "SQL"}
	require.NoError(t, db.Create(&sqlSkill).Error)
	require.NoError(t, db.Create(&users.UserSkill{UserID: student.ID, SkillID: goSkill.ID, Level: users.LevelBeginner}).Error)
	require.NoError(t, db.Create(&users.UserSkill{UserID: student.ID, SkillID: sqlSkill.ID, Level: users.LevelAdvanced}).Error)

	rec := httptest.NewRecorder()
	CareerOverview(rec, authedJSONRequest(t, http.MethodGet, "/career/overview", token, nil), db)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		ATSScore     int      `json:"atsScore"`
		AverageMatch int      `json:"averageMatch"`
		SkillGaps    []string `json:"skillGaps"`
		SkillCount   int      `json:"skillCount"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, 75, data.ATSScore) // 65 + 2*5
	assert.Equal(t, 80, data.AverageMatch)
	assert.Equal(t, []string{"Go"}, data.SkillGaps)
	assert.Equal(t, 2, data.SkillCount)
}
