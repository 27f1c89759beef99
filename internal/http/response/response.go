// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Ошибки отдаются в едином формате
// {"detail": "сообщение"}, успешные ответы — сериализованной моделью.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/continental-academy/academy-api/internal/models"
)

// Error описывает стандартную структуру JSON‑ответа с ошибкой.
type Error struct {
	Detail string `json:"detail" example:"invalid request body"`
}

// Detail возвращает Error с переданным сообщением.
func Detail(msg string) Error {
	return Error{Detail: msg}
}

// ValidationError формирует Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Error {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error{Detail: strings.Join(errsMsgs, ", ")}
}

// FromError транслирует доменную ошибку в HTTP-статус и тело ответа.
// Неузнанные ошибки дают 500 с нейтральным сообщением.
func FromError(err error) (int, Error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Detail("not found")
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, Detail("forbidden")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Detail("invalid credentials")
	case errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest, Detail("already exists")
	default:
		return http.StatusInternalServerError, Detail("internal server error")
	}
}
