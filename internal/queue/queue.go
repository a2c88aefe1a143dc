package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	pendingAlertsKey = "pending_alerts"

	// OfflineIDPrefix - пространство имен идентификаторов для офлайн-репортов,
	// не пересекающееся с серверными id
	OfflineIDPrefix = "offline-"
)

// RedisPendingQueue - очередь отложенных (офлайн) репортов поверх списка Redis.
// Порядок чтения совпадает с порядком добавления.
type RedisPendingQueue struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// NewRedisPendingQueue создает очередь отложенных репортов
func NewRedisPendingQueue(client *redis.Client, logger *logrus.Logger) *RedisPendingQueue {
	return &RedisPendingQueue{
		redisClient: client,
		logger:      logger,
	}
}

// Enqueue добавляет отложенный репорт в конец очереди. Репорт обязан быть
// помечен как pending и иметь id из офлайн-пространства имен.
func (q *RedisPendingQueue) Enqueue(ctx context.Context, alert *models.Alert) error {
	if !alert.IsPending {
		return fmt.Errorf("refusing to enqueue alert %s: not marked as pending", alert.ID)
	}
	if !strings.HasPrefix(alert.ID, OfflineIDPrefix) {
		return fmt.Errorf("refusing to enqueue alert %s: id is outside the offline namespace", alert.ID)
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal pending alert: %w", err)
	}

	// RPush сохраняет порядок вставки при чтении через LRange
	if err := q.redisClient.RPush(ctx, pendingAlertsKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue pending alert: %w", err)
	}
	return nil
}

// ListPending возвращает содержимое очереди в порядке добавления.
// Поврежденные записи пропускаются с предупреждением, а не роняют вызов.
func (q *RedisPendingQueue) ListPending(ctx context.Context) ([]*models.Alert, error) {
	values, err := q.redisClient.LRange(ctx, pendingAlertsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read pending alerts: %w", err)
	}

	alerts := make([]*models.Alert, 0, len(values))
	for _, v := range values {
		alert := &models.Alert{}
		if err := json.Unmarshal([]byte(v), alert); err != nil {
			q.logger.WithError(err).Warn("Skipping malformed pending alert entry")
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// Clear опустошает очередь. Вызывается только после успешного слияния
// всех записей в основную коллекцию.
func (q *RedisPendingQueue) Clear(ctx context.Context) error {
	if err := q.redisClient.Del(ctx, pendingAlertsKey).Err(); err != nil {
		return fmt.Errorf("failed to clear pending alerts: %w", err)
	}
	return nil
}
