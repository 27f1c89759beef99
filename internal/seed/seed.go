// Package seed создает стартовые данные при первом запуске:
// запись настроек сайта и две учетные записи, если база пуста.
package seed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/continental-academy/academy-api/internal/lib/password"
	"github.com/continental-academy/academy-api/internal/models"
)

// Repository определяет методы хранилища, нужные сиду.
type Repository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpsertSettings(ctx context.Context, st *models.Settings) error
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Run создает запись настроек при отсутствии и, если пользователей нет,
// администратора со случайным паролем и тестового ученика. Пароль
// администратора выводится в лог один раз при создании.
func Run(ctx context.Context, repo Repository, log *slog.Logger) error {
	const op = "seed.Run"

	if _, err := repo.GetSettings(ctx); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err = repo.UpsertSettings(ctx, models.DefaultSettings()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("site settings created with defaults")
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return nil
	}

	adminPassword, err := randomPassword()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = createUser(ctx, repo, "Admin", "admin@continentalacademy.com",
		adminPassword, models.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("admin account created",
		slog.String("email", "admin@continentalacademy.com"),
		slog.String("password", adminPassword))

	if err = createUser(ctx, repo, "Student", "student@continentalacademy.com",
		"student123", models.RoleUser); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("student account created",
		slog.String("email", "student@continentalacademy.com"))
	return nil
}

func createUser(ctx context.Context, repo Repository, name, email, rawPassword, role string) error {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return err
	}
	return repo.CreateUser(ctx, &models.User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  hashed,
		Role:          role,
		Subscriptions: []string{},
		Courses:       []string{},
		CreatedAt:     time.Now().UTC(),
	})
}

func randomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
