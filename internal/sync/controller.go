package sync

import (
	"context"
	"fmt"
	"sync"

	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// AnonymousAuthor - имя автора, присваиваемое репорту после сверки
const AnonymousAuthor = "Anonymous"

// PendingQueue определяет контракт очереди отложенных (офлайн) репортов
type PendingQueue interface {
	Enqueue(ctx context.Context, alert *models.Alert) error
	ListPending(ctx context.Context) ([]*models.Alert, error)
	Clear(ctx context.Context) error
}

// AlertMerger определяет контракт слияния репорта в основную коллекцию.
// Слияние идет по id: уже показанный оптимистично репорт обновляется, а не дублируется.
type AlertMerger interface {
	Merge(ctx context.Context, alert *models.Alert) error
}

// Controller отслеживает переходы онлайн/офлайн и при восстановлении связи
// переносит очередь отложенных репортов в основную коллекцию
type Controller struct {
	mu     sync.Mutex
	online bool

	queue  PendingQueue
	merger AlertMerger
	logger *logrus.Logger
}

// NewController создает контроллер синхронизации в заданном начальном состоянии.
// Если стартовое состояние - онлайн, вызывающая сторона должна один раз запустить
// Reconcile, чтобы подобрать репорты из прошлой офлайн-сессии.
func NewController(queue PendingQueue, merger AlertMerger, logger *logrus.Logger, online bool) *Controller {
	return &Controller{
		online: online,
		queue:  queue,
		merger: merger,
		logger: logger,
	}
}

// Online сообщает текущее состояние связи
func (c *Controller) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// SetOffline переводит контроллер в офлайн. Переход без побочных эффектов.
func (c *Controller) SetOffline() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.online {
		c.logger.Info("Connectivity lost, entering offline mode")
	}
	c.online = false
}

// SetOnline переводит контроллер в онлайн. Переход офлайн -> онлайн
// запускает сверку очереди отложенных репортов.
func (c *Controller) SetOnline(ctx context.Context) error {
	c.mu.Lock()
	wasOffline := !c.online
	c.online = true
	c.mu.Unlock()

	if !wasOffline {
		return nil
	}

	c.logger.Info("Connectivity restored, reconciling pending alerts")
	return c.Reconcile(ctx)
}

// Reconcile переносит отложенные репорты в основную коллекцию: снимает флаг
// pending, анонимизирует автора и сливает запись по ее id. Очередь очищается
// только после успешного слияния всех записей - частичной очистки нет.
func (c *Controller) Reconcile(ctx context.Context) error {
	pending, err := c.queue.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("sync: failed to read pending alerts: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	log := c.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "Reconcile",
		"count":   len(pending),
	})
	log.Info("Merging pending alerts into the main collection")

	for _, alert := range pending {
		alert.IsPending = false
		alert.Author = AnonymousAuthor

		if err := c.merger.Merge(ctx, alert); err != nil {
			// Очередь остается нетронутой: сверка повторится при следующем переходе в онлайн
			log.WithError(err).WithField("alert_id", alert.ID).Error("Failed to merge pending alert, aborting reconcile")
			return fmt.Errorf("sync: failed to merge pending alert %s: %w", alert.ID, err)
		}
	}

	if err := c.queue.Clear(ctx); err != nil {
		return fmt.Errorf("sync: failed to clear pending queue: %w", err)
	}

	log.Info("Pending alerts reconciled successfully")
	return nil
}
