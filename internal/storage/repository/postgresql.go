// Package repository реализует хранилище данных на основе PostgreSQL
// для платформы: пользователи и их права доступа, каталог программ,
// курсов и уроков, товары магазина, настройки сайта, платежи и
// события аналитики.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/continental-academy/academy-api/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// mapRowError переводит sql.ErrNoRows и некорректный идентификатор
// в models.ErrNotFound, остальные ошибки оборачивает именем операции.
// Идентификаторы приходят из пути запроса как есть, поэтому строка,
// которую Postgres не смог разобрать как UUID (SQLSTATE 22P02),
// означает отсутствие записи, а не ошибку сервера.
func mapRowError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isInvalidID сообщает, не смог ли Postgres привести значение к типу
// колонки, например строку, которая не является UUID.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isUniqueViolation сообщает, нарушает ли ошибка уникальный индекс.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
