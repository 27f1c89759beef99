// Package models содержит доменные структуры платформы: пользователей,
// каталог (программы, курсы, уроки, товары), настройки сайта и платежи.
// Структуры используются в бизнес-логике, при работе с хранилищем
// и сериализуются в JSON-ответы API.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя платформы.
//
// Subscriptions и Courses — множества идентификаторов программ и курсов,
// определяющие права доступа. PasswordHash никогда не сериализуется
// в ответы API.
type User struct {
	ID            string    `json:"id"`            // Уникальный идентификатор пользователя
	Name          string    `json:"name"`          // Имя пользователя
	Email         string    `json:"email"`         // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash  string    `json:"-"`             // Хэш пароля, не отдается наружу
	Role          string    `json:"role"`          // Роль: user или admin
	Subscriptions []string  `json:"subscriptions"` // Идентификаторы программ с активной подпиской
	Courses       []string  `json:"courses"`       // Идентификаторы курсов с прямым доступом
	CreatedAt     time.Time `json:"created_at"`    // Дата регистрации
}

// IsAdmin сообщает, обладает ли пользователь административной ролью.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest — входные данные регистрации.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest — входные данные аутентификации.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse — ответ на успешную регистрацию или вход.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
