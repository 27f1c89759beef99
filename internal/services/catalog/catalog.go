// Package catalog содержит бизнес-логику управления контентом платформы:
// программами, курсами, уроками, товарами магазина, FAQ, результатами,
// настройками сайта и событиями аналитики. Публичные списки и настройки
// кешируются, админские записи инвалидируют кеш.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/continental-academy/academy-api/internal/models"
)

// Ключи кеша публичного контента.
const (
	cacheKeySettings = "site:settings"
	cacheKeyPrograms = "catalog:programs"
	cacheKeyFAQs     = "catalog:faqs"
	cacheKeyResults  = "catalog:results"
)

// cacheTTL — время жизни кешируемых публичных списков.
const cacheTTL = 5 * time.Minute

// Repository определяет методы хранилища контента.
type Repository interface {
	CreateProgram(ctx context.Context, p *models.Program) error
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	ListPrograms(ctx context.Context, onlyActive bool) ([]*models.Program, error)
	UpdateProgram(ctx context.Context, p *models.Program) (int, error)
	DeleteProgram(ctx context.Context, id string) (int, error)

	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, programID string, onlyActive bool) ([]*models.Course, error)
	ListCoursesAdmin(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, c *models.Course) (int, error)
	DeleteCourse(ctx context.Context, id string) (int, error)

	CreateLesson(ctx context.Context, l *models.Lesson) error
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	MaxLessonOrder(ctx context.Context, courseID string) (int, error)
	UpdateLesson(ctx context.Context, l *models.Lesson) (int, error)
	DeleteLesson(ctx context.Context, id string) (int, error)
	ReorderLessons(ctx context.Context, orders []models.LessonOrder) error

	CreateShopProduct(ctx context.Context, p *models.ShopProduct) error
	GetShopProduct(ctx context.Context, id string) (*models.ShopProduct, error)
	ListShopProducts(ctx context.Context, category string, onlyAvailable bool) ([]*models.ShopProduct, error)
	UpdateShopProduct(ctx context.Context, p *models.ShopProduct) (int, error)
	DeleteShopProduct(ctx context.Context, id string) (int, error)

	CreateFAQ(ctx context.Context, f *models.FAQ) error
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	UpdateFAQ(ctx context.Context, f *models.FAQ) (int, error)
	DeleteFAQ(ctx context.Context, id string) (int, error)

	CreateResult(ctx context.Context, r *models.Result) error
	ListResults(ctx context.Context) ([]*models.Result, error)
	DeleteResult(ctx context.Context, id string) (int, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	UpsertSettings(ctx context.Context, st *models.Settings) error

	CreateAnalyticsEvent(ctx context.Context, e *models.AnalyticsEvent) error
	ListRecentAnalyticsEvents(ctx context.Context, limit int) ([]*models.AnalyticsEvent, error)
	CountUsers(ctx context.Context) (int, error)
	CountSubscribedUsers(ctx context.Context) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику управления контентом.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// invalidate сбрасывает ключ кеша, ошибки только логируются.
func (s *Service) invalidate(key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", "key", key)
	}
}

// ListPrograms возвращает активные программы для публичной витрины,
// новые первыми, через кеш.
func (s *Service) ListPrograms(ctx context.Context) ([]*models.Program, error) {
	const op = "catalog.ListPrograms"

	if s.cache != nil {
		var cached []*models.Program
		if found, err := s.cache.Get(cacheKeyPrograms, &cached); err == nil && found {
			return cached, nil
		}
	}

	programs, err := s.repo.ListPrograms(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err = s.cache.Set(cacheKeyPrograms, programs, cacheTTL); err != nil {
			s.log.Warn("failed to cache programs", "key", cacheKeyPrograms)
		}
	}
	return programs, nil
}

// ListProgramsAdmin возвращает все программы, включая скрытые.
func (s *Service) ListProgramsAdmin(ctx context.Context) ([]*models.Program, error) {
	const op = "catalog.ListProgramsAdmin"

	programs, err := s.repo.ListPrograms(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return programs, nil
}

// CreateProgram создает программу из запроса админа.
func (s *Service) CreateProgram(ctx context.Context, req models.ProgramRequest) (*models.Program, error) {
	const op = "catalog.CreateProgram"

	program := &models.Program{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Currency:      defaultCurrency(req.Currency),
		ThumbnailURL:  req.ThumbnailURL,
		Features:      req.Features,
		IsActive:      boolOrDefault(req.IsActive, true),
		StripePriceID: req.StripePriceID,
		CreatedAt:     time.Now().UTC(),
	}
	if program.Features == nil {
		program.Features = []string{}
	}
	if err := s.repo.CreateProgram(ctx, program); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(cacheKeyPrograms)
	return program, nil
}

// UpdateProgram обновляет программу по ID.
func (s *Service) UpdateProgram(ctx context.Context, id string, req models.ProgramRequest) (*models.Program, error) {
	const op = "catalog.UpdateProgram"

	program, err := s.repo.GetProgram(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	program.Name = req.Name
	program.Description = req.Description
	program.Price = req.Price
	program.Currency = defaultCurrency(req.Currency)
	program.ThumbnailURL = req.ThumbnailURL
	program.Features = req.Features
	if program.Features == nil {
		program.Features = []string{}
	}
	program.IsActive = boolOrDefault(req.IsActive, program.IsActive)
	program.StripePriceID = req.StripePriceID

	if _, err = s.repo.UpdateProgram(ctx, program); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(cacheKeyPrograms)
	return program, nil
}

// DeleteProgram удаляет программу. Курсы программы переходят в разряд
// назначаемых напрямую, подписки на программу снимаются.
func (s *Service) DeleteProgram(ctx context.Context, id string) error {
	const op = "catalog.DeleteProgram"

	deleted, err := s.repo.DeleteProgram(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.invalidate(cacheKeyPrograms)
	return nil
}

// ListCourses возвращает активные курсы для витрины с количеством уроков.
// Непустой programID фильтрует по программе.
func (s *Service) ListCourses(ctx context.Context, programID string) ([]*models.Course, error) {
	const op = "catalog.ListCourses"

	courses, err := s.repo.ListCourses(ctx, programID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// ListCoursesAdmin возвращает все курсы с количеством уроков и именем программы.
func (s *Service) ListCoursesAdmin(ctx context.Context) ([]*models.Course, error) {
	const op = "catalog.ListCoursesAdmin"

	courses, err := s.repo.ListCoursesAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// CreateCourse создает курс из запроса админа.
func (s *Service) CreateCourse(ctx context.Context, req models.CourseRequest) (*models.Course, error) {
	const op = "catalog.CreateCourse"

	course := &models.Course{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		ProgramID:     req.ProgramID,
		ThumbnailURL:  req.ThumbnailURL,
		DurationHours: req.DurationHours,
		Order:         req.Order,
		IsActive:      boolOrDefault(req.IsActive, true),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}

// UpdateCourse обновляет курс по ID.
func (s *Service) UpdateCourse(ctx context.Context, id string, req models.CourseRequest) (*models.Course, error) {
	const op = "catalog.UpdateCourse"

	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	course.Title = req.Title
	course.Description = req.Description
	course.ProgramID = req.ProgramID
	course.ThumbnailURL = req.ThumbnailURL
	course.DurationHours = req.DurationHours
	course.Order = req.Order
	course.IsActive = boolOrDefault(req.IsActive, course.IsActive)

	if _, err = s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}

// DeleteCourse удаляет курс вместе с уроками и прямыми доступами.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	const op = "catalog.DeleteCourse"

	deleted, err := s.repo.DeleteCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// CreateLesson создает урок. Порядок по умолчанию — следующий за
// максимальным в курсе.
func (s *Service) CreateLesson(ctx context.Context, req models.LessonRequest) (*models.Lesson, error) {
	const op = "catalog.CreateLesson"

	if _, err := s.repo.GetCourse(ctx, req.CourseID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order := req.Order
	if order == 0 {
		maxOrder, err := s.repo.MaxLessonOrder(ctx, req.CourseID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order = maxOrder + 1
	}

	lesson := &models.Lesson{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		CourseID:        req.CourseID,
		VideoURL:        req.VideoURL,
		MuxPlaybackID:   req.MuxPlaybackID,
		DurationMinutes: req.DurationMinutes,
		Order:           order,
		IsFree:          req.IsFree,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.CreateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lesson, nil
}

// UpdateLesson обновляет урок по ID.
func (s *Service) UpdateLesson(ctx context.Context, id string, req models.LessonRequest) (*models.Lesson, error) {
	const op = "catalog.UpdateLesson"

	lesson, err := s.repo.GetLesson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.CourseID = req.CourseID
	lesson.VideoURL = req.VideoURL
	lesson.MuxPlaybackID = req.MuxPlaybackID
	lesson.DurationMinutes = req.DurationMinutes
	lesson.Order = req.Order
	lesson.IsFree = req.IsFree

	if _, err = s.repo.UpdateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lesson, nil
}

// DeleteLesson удаляет урок.
func (s *Service) DeleteLesson(ctx context.Context, id string) error {
	const op = "catalog.DeleteLesson"

	deleted, err := s.repo.DeleteLesson(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ReorderLessons применяет новый порядок уроков одной транзакцией.
func (s *Service) ReorderLessons(ctx context.Context, orders []models.LessonOrder) error {
	const op = "catalog.ReorderLessons"

	if err := s.repo.ReorderLessons(ctx, orders); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// defaultCurrency подставляет EUR при пустом коде валюты.
func defaultCurrency(currency string) string {
	if currency == "" {
		return "EUR"
	}
	return currency
}

// boolOrDefault разворачивает необязательный флаг запроса.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
