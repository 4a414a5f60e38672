package validators

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors разворачивает ошибки валидатора в карту поле -> сообщение
func FieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body"
		return errors
	}
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			errors[fe.Field()] = "This field is required"
		case "email":
			errors[fe.Field()] = "Invalid email address"
		case "min":
			errors[fe.Field()] = "Value is too short"
		case "max":
			errors[fe.Field()] = "Value is too long"
		case "oneof":
			errors[fe.Field()] = "Value is not allowed"
		case "gte", "lte":
			errors[fe.Field()] = "Value is out of range"
		default:
			errors[fe.Field()] = "Invalid value"
		}
	}
	return errors
}
