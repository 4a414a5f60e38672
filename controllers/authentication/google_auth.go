package authentication

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/middleware"
	"skillforge-backend/models/users"
)

const googleOauthState = "google"

func googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  config.AppConfig.GoogleRedirectURL,
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// HandleGoogleLogin initiates Google OAuth login
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	cfg := googleOauthConfig()
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		middleware.JsonResponse(w, http.StatusServiceUnavailable, false, "Google login is not configured", nil)
		return
	}
	url := cfg.AuthCodeURL(googleOauthState)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback обрабатывает callback и выдает тот же
// платформенный JWT, что и обычный вход - второй модели сессий нет.
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.FormValue("state") != googleOauthState {
		log.Println("Invalid OAuth state")
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid OAuth state", nil)
		return
	}

	cfg := googleOauthConfig()
	token, err := cfg.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Error while exchanging code for token: %s", err.Error())
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Google authentication failed", nil)
		return
	}

	client := cfg.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Printf("Error while fetching user info: %s", err.Error())
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Google authentication failed", nil)
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error reading Google response", nil)
		return
	}

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(content, &userInfo); err != nil || userInfo.Email == "" {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Google authentication failed", nil)
		return
	}

	var user users.User
	err = db.Where("email = ? AND provider = ?", userInfo.Email, "google").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = users.User{
			Name:     userInfo.Name,
			Email:    userInfo.Email,
			Password: "-", // пароля нет, вход только через Google
			Role:     users.RoleStudent,
			Provider: "google",
		}
		if err := db.Create(&user).Error; err != nil {
			middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error creating user", nil)
			return
		}
	} else if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error loading user", nil)
		return
	}

	jwtToken, err := GenerateToken(&user)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error generating token", nil)
		return
	}
	setSessionCookie(w, jwtToken)

	middleware.JsonResponse(w, http.StatusOK, true, "Logged in with Google", map[string]interface{}{
		"user":  user,
		"token": jwtToken,
	})
}
