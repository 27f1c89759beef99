package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/continental-academy/academy-api/internal/models"
)

// ListFAQs возвращает вопросы-ответы по возрастанию порядка через кеш.
func (s *Service) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	const op = "catalog.ListFAQs"

	if s.cache != nil {
		var cached []*models.FAQ
		if found, err := s.cache.Get(cacheKeyFAQs, &cached); err == nil && found {
			return cached, nil
		}
	}

	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err = s.cache.Set(cacheKeyFAQs, faqs, cacheTTL); err != nil {
			s.log.Warn("failed to cache faqs", "key", cacheKeyFAQs)
		}
	}
	return faqs, nil
}

// CreateFAQ создает вопрос-ответ из запроса админа.
func (s *Service) CreateFAQ(ctx context.Context, req models.FAQRequest) (*models.FAQ, error) {
	const op = "catalog.CreateFAQ"

	faq := &models.FAQ{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Answer:    req.Answer,
		Order:     req.Order,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateFAQ(ctx, faq); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(cacheKeyFAQs)
	return faq, nil
}

// UpdateFAQ обновляет вопрос-ответ по ID.
func (s *Service) UpdateFAQ(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error) {
	const op = "catalog.UpdateFAQ"

	faq := &models.FAQ{
		ID:       id,
		Question: req.Question,
		Answer:   req.Answer,
		Order:    req.Order,
	}
	updated, err := s.repo.UpdateFAQ(ctx, faq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updated == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.invalidate(cacheKeyFAQs)
	return faq, nil
}

// DeleteFAQ удаляет вопрос-ответ.
func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	const op = "catalog.DeleteFAQ"

	deleted, err := s.repo.DeleteFAQ(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.invalidate(cacheKeyFAQs)
	return nil
}

// ListResults возвращает результаты учеников по возрастанию порядка через кеш.
func (s *Service) ListResults(ctx context.Context) ([]*models.Result, error) {
	const op = "catalog.ListResults"

	if s.cache != nil {
		var cached []*models.Result
		if found, err := s.cache.Get(cacheKeyResults, &cached); err == nil && found {
			return cached, nil
		}
	}

	results, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err = s.cache.Set(cacheKeyResults, results, cacheTTL); err != nil {
			s.log.Warn("failed to cache results", "key", cacheKeyResults)
		}
	}
	return results, nil
}

// CreateResult создает результат ученика из запроса админа.
func (s *Service) CreateResult(ctx context.Context, req models.ResultRequest) (*models.Result, error) {
	const op = "catalog.CreateResult"

	result := &models.Result{
		ID:        uuid.NewString(),
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		Order:     req.Order,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateResult(ctx, result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(cacheKeyResults)
	return result, nil
}

// DeleteResult удаляет результат ученика.
func (s *Service) DeleteResult(ctx context.Context, id string) error {
	const op = "catalog.DeleteResult"

	deleted, err := s.repo.DeleteResult(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.invalidate(cacheKeyResults)
	return nil
}

// GetSettings возвращает настройки сайта через кеш. Отсутствующая
// запись лениво создается со значениями по умолчанию.
func (s *Service) GetSettings(ctx context.Context) (*models.Settings, error) {
	const op = "catalog.GetSettings"

	if s.cache != nil {
		var cached models.Settings
		if found, err := s.cache.Get(cacheKeySettings, &cached); err == nil && found {
			return &cached, nil
		}
	}

	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, models.ErrNotFound) {
		settings = models.DefaultSettings()
		if err = s.repo.UpsertSettings(ctx, settings); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err = s.cache.Set(cacheKeySettings, settings, cacheTTL); err != nil {
			s.log.Warn("failed to cache settings", "key", cacheKeySettings)
		}
	}
	return settings, nil
}

// UpdateSettings сохраняет настройки сайта и сбрасывает их кеш.
func (s *Service) UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	const op = "catalog.UpdateSettings"

	settings.ID = models.SettingsID
	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(cacheKeySettings)
	return settings, nil
}

// EnsureSettings создает запись настроек при отсутствии. Используется
// при первом старте и админским сидом.
func (s *Service) EnsureSettings(ctx context.Context) (*models.Settings, error) {
	return s.GetSettings(ctx)
}

// RecordAnalyticsEvent сохраняет событие фронтенд-аналитики.
func (s *Service) RecordAnalyticsEvent(ctx context.Context, req models.AnalyticsEventRequest) error {
	const op = "catalog.RecordAnalyticsEvent"

	event := &models.AnalyticsEvent{
		EventType: req.EventType,
		Page:      req.Page,
		UserID:    req.UserID,
		Data:      req.Data,
	}
	if err := s.repo.CreateAnalyticsEvent(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AnalyticsSummary возвращает сводку для админ-панели: количество
// пользователей, подписчиков и последние 20 событий.
func (s *Service) AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error) {
	const op = "catalog.AnalyticsSummary"

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	totalSubscriptions, err := s.repo.CountSubscribedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	events, err := s.repo.ListRecentAnalyticsEvents(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if events == nil {
		events = []*models.AnalyticsEvent{}
	}
	return &models.AnalyticsSummary{
		TotalUsers:         totalUsers,
		TotalSubscriptions: totalSubscriptions,
		RecentEvents:       events,
	}, nil
}
