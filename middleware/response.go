package middleware

import (
	"encoding/json"
	"net/http"
)

// JsonResponse пишет единый конверт ответа {success, message, data}
func JsonResponse(w http.ResponseWriter, statusCode int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
}

// ValidationErrorResponse возвращает ошибки валидации по полям
func ValidationErrorResponse(w http.ResponseWriter, errors map[string]string) {
	JsonResponse(w, http.StatusUnprocessableEntity, false, "Validation failed", errors)
}
