package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	preferencesKey = "notification_preferences"
	utilityAreaKey = "utility_area"
)

// SettingsRepository хранит пользовательские настройки в Redis как
// строковые ключи. Поврежденные данные заменяются значениями по умолчанию,
// а не роняют приложение.
type SettingsRepository struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewSettingsRepository(redisClient *redis.Client, logger *logrus.Logger) service.SettingsRepository {
	return &SettingsRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetPreferences возвращает сохраненные настройки уведомлений.
// Отсутствующее или поврежденное значение дает настройки по умолчанию.
func (r *SettingsRepository) GetPreferences(ctx context.Context) (models.NotificationPreferences, error) {
	val, err := r.redisClient.Get(ctx, preferencesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.DefaultNotificationPreferences(), nil
		}
		return models.DefaultNotificationPreferences(), fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs models.NotificationPreferences
	if err := json.Unmarshal(val, &prefs); err != nil {
		r.logger.WithError(err).Warn("Malformed stored preferences, falling back to defaults")
		return models.DefaultNotificationPreferences(), nil
	}
	return prefs, nil
}

// SavePreferences сохраняет настройки уведомлений
func (r *SettingsRepository) SavePreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	val, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := r.redisClient.Set(ctx, preferencesKey, val, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// GetUtilityArea возвращает выбранную зону отключений или nil, если зона
// не выбрана либо сохраненное значение повреждено
func (r *SettingsRepository) GetUtilityArea(ctx context.Context) (*models.UtilityArea, error) {
	val, err := r.redisClient.Get(ctx, utilityAreaKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get utility area: %w", err)
	}

	area := &models.UtilityArea{}
	if err := json.Unmarshal(val, area); err != nil {
		r.logger.WithError(err).Warn("Malformed stored utility area, treating as unset")
		return nil, nil
	}
	return area, nil
}

// SaveUtilityArea сохраняет выбранную зону отключений
func (r *SettingsRepository) SaveUtilityArea(ctx context.Context, area models.UtilityArea) error {
	val, err := json.Marshal(area)
	if err != nil {
		return fmt.Errorf("failed to marshal utility area: %w", err)
	}
	if err := r.redisClient.Set(ctx, utilityAreaKey, val, 0).Err(); err != nil {
		return fmt.Errorf("failed to save utility area: %w", err)
	}
	return nil
}
