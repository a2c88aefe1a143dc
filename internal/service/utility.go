package service

import (
	"context"
	"fmt"

	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// UtilityClient определяет контракт внешнего API статуса отключений.
// Все методы деградируют к пустому результату при сбое.
type UtilityClient interface {
	SearchAreas(ctx context.Context, query string) []models.UtilityArea
	SearchAreasByCoordinate(ctx context.Context, location models.Coordinate) []models.UtilityArea
	GetStatus(ctx context.Context, areaID string) *models.UtilityStatus
}

// UtilityService определяет контракт бизнес-логики статуса отключений
type UtilityService interface {
	SearchAreas(ctx context.Context, query string) []models.UtilityArea
	SearchAreasByCoordinate(ctx context.Context, location models.Coordinate) []models.UtilityArea
	Status(ctx context.Context) (*models.UtilityStatus, *models.UtilityArea, error)
	SaveArea(ctx context.Context, area models.UtilityArea) error
}

type utilityService struct {
	client   UtilityClient
	settings SettingsRepository
	logger   *logrus.Logger
}

// NewUtilityService создает сервис статуса отключений
func NewUtilityService(client UtilityClient, settings SettingsRepository, logger *logrus.Logger) UtilityService {
	return &utilityService{
		client:   client,
		settings: settings,
		logger:   logger,
	}
}

// SearchAreas ищет зоны по тексту; пустой срез при отсутствии результатов
func (s *utilityService) SearchAreas(ctx context.Context, query string) []models.UtilityArea {
	return s.client.SearchAreas(ctx, query)
}

// SearchAreasByCoordinate ищет зоны рядом с координатой
func (s *utilityService) SearchAreasByCoordinate(ctx context.Context, location models.Coordinate) []models.UtilityArea {
	return s.client.SearchAreasByCoordinate(ctx, location)
}

// Status возвращает расписание отключений для сохраненной зоны пользователя.
// Если зона не выбрана или API недоступен, возвращается nil-статус без ошибки.
func (s *utilityService) Status(ctx context.Context) (*models.UtilityStatus, *models.UtilityArea, error) {
	area, err := s.settings.GetUtilityArea(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load saved utility area")
		return nil, nil, nil
	}
	if area == nil {
		return nil, nil, nil
	}

	status := s.client.GetStatus(ctx, area.ID)
	return status, area, nil
}

// SaveArea сохраняет выбранную пользователем зону
func (s *utilityService) SaveArea(ctx context.Context, area models.UtilityArea) error {
	if err := s.settings.SaveUtilityArea(ctx, area); err != nil {
		s.logger.WithError(err).Error("Failed to save utility area")
		return fmt.Errorf("service: could not save utility area: %w", err)
	}
	return nil
}
