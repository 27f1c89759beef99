package models

import "errors"

// Ошибки доменного уровня. Сервисы возвращают их (возможно обернутыми),
// HTTP-обработчики транслируют в статусы ответов: ErrNotFound → 404,
// ErrConflict → 400/409, ErrInvalidCredentials → 401, ErrForbidden → 403.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)
