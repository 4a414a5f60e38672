package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/middleware"
	"skillforge-backend/models/users"
	"skillforge-backend/validators"
)

// Сессия живет один час, токен лежит в HTTP-only cookie
const (
	SessionCookieName = "skillforge_token"
	sessionTTL        = time.Hour
)

// ErrUnauthenticated возвращается при любом отказе разбора сессии.
// Подмены личности на "первого попавшегося пользователя" нет.
var ErrUnauthenticated = errors.New("unauthenticated")

type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

func jwtKey() []byte {
	return []byte(config.AppConfig.JWTKey)
}

// GenerateToken выписывает JWT с часовым сроком действия
func GenerateToken(user *users.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(sessionTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken разбирает сессию из cookie или заголовка Authorization.
// Чтение сессии ничего не изменяет. Любая ошибка - ErrUnauthenticated.
func ValidateToken(r *http.Request) (*Claims, error) {
	tokenString := ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	if claims.UserID == 0 || claims.Role == "" {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register: регистрация с паролем и выбором роли
func Register(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	var input validators.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error hashing password", nil)
		return
	}

	role := input.Role
	if role == "" {
		role = users.RoleStudent
	}

	user := users.User{
		Name:     input.Name,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashedPassword),
		Role:     role,
		Provider: "local",
	}

	// Уникальность email держит ограничение базы, отдельной проверки
	// перед вставкой нет - гонки check-then-insert исключены.
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.JsonResponse(w, http.StatusConflict, false, "Email already registered", nil)
			return
		}
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error creating user", nil)
		return
	}

	token, err := GenerateToken(&user)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error generating token", nil)
		return
	}
	setSessionCookie(w, token)

	middleware.JsonResponse(w, http.StatusCreated, true, "User registered successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login: вход с паролем и выдача JWT
func Login(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}

	var input validators.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.JsonResponse(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if err := input.Validate(); err != nil {
		middleware.ValidationErrorResponse(w, validators.FieldErrors(err))
		return
	}

	var user users.User
	if err := db.Where("email = ? AND provider = ?", strings.ToLower(strings.TrimSpace(input.Email)), "local").First(&user).Error; err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		middleware.JsonResponse(w, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	token, err := GenerateToken(&user)
	if err != nil {
		middleware.JsonResponse(w, http.StatusInternalServerError, false, "Error generating token", nil)
		return
	}
	setSessionCookie(w, token)

	middleware.JsonResponse(w, http.StatusOK, true, "Logged in successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout: завершение сеанса, просто гасим cookie
func Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		middleware.JsonResponse(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil)
		return
	}
	clearSessionCookie(w)
	middleware.JsonResponse(w, http.StatusOK, true, "Logged out successfully", nil)
}
