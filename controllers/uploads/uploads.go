package uploads

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/controllers/authentication"
	"skillforge-backend/middleware"
	"skillforge-backend/models/users"
)

const maxUploadSize = 5 << 20 // 5 MB

// PublicPath — URL-префикс, под которым раздается каталог загрузок.
// Сам каталог задается через UPLOAD_DIR, ссылки от него не зависят.
const PublicPath = "/public/uploads/"

// Допустимые расширения по типу загрузки
var allowedExtensions = map[string][]string{
	"avatar": {".png", ".jpg", ".jpeg", ".webp"},
	"resume": {".pdf", ".doc", ".docx"},
}

// UploadFile принимает аватар или резюме и кладет файл на локальный диск
// под публичным путем. Имя файла заменяется на uuid, расширение
// проверяется по списку.
func UploadFile(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	claims, err := authentication.ValidateToken(r)
	if err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Unauthenticated", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Failed to read file", nil)
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	extensions, ok := allowedExtensions[kind]
	if !ok {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Unknown upload kind", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range extensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "File type is not allowed", nil)
		return
	}

	uploadDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to prepare upload directory", nil)
		return
	}

	fileName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(uploadDir, fileName))
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to save file", nil)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to save file", nil)
		return
	}

	publicURL := PublicPath + fileName

	var user users.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		middleware.JsonResponse(w, http.StatusNotFound, false, "User not found", nil)
		return
	}
	switch kind {
	case "avatar":
		user.AvatarURL = publicURL
	case "resume":
		user.ResumeURL = publicURL
	}
	if err := db.Save(&user).Error; err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Failed to update profile", nil)
		return
	}

	middleware.JsonResponse(w, http.StatusCreated, true, "File uploaded", map[string]string{
		"url": publicURL,
	})
}
