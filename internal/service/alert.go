package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/civic_alert_system/internal/engine"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/queue"
	syncctrl "github.com/shenikar/civic_alert_system/internal/sync"
	"github.com/sirupsen/logrus"
)

// ErrNotFound возвращается операциями над несуществующим оповещением.
// Такие операции не трогают состояние и не фатальны для приложения.
var ErrNotFound = errors.New("alert not found")

// AlertRepository определяет контракт для работы с хранилищем оповещений
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	List(ctx context.Context, categories []models.Category, page, pageSize int) ([]*models.Alert, error)
	ListAll(ctx context.Context) ([]*models.Alert, error)
	IncrementLikes(ctx context.Context, id string) error
	AddComment(ctx context.Context, comment *models.Comment) error
	Resolve(ctx context.Context, id string) error
	Merge(ctx context.Context, alert *models.Alert) error
	GetAlertFromCache(ctx context.Context, id string) (*models.Alert, error)
	SetAlertCache(ctx context.Context, alert *models.Alert) error
	InvalidateAlertCache(ctx context.Context, id string) error
}

// SettingsRepository определяет контракт для персистентных пользовательских
// настроек. Поврежденные сохраненные данные заменяются значениями по умолчанию.
type SettingsRepository interface {
	GetPreferences(ctx context.Context) (models.NotificationPreferences, error)
	SavePreferences(ctx context.Context, prefs models.NotificationPreferences) error
	GetUtilityArea(ctx context.Context) (*models.UtilityArea, error)
	SaveUtilityArea(ctx context.Context, area models.UtilityArea) error
}

// AlertService определяет контракт бизнес-логики оповещений
type AlertService interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context, categories []models.Category, page, pageSize int) ([]*models.Alert, error)
	LikeAlert(ctx context.Context, id string) error
	AddComment(ctx context.Context, alertID, author, text string) (*models.Comment, error)
	ResolveAlert(ctx context.Context, id string) error
	PriorityAlert(ctx context.Context, location models.Coordinate) (engine.PriorityResult, error)
	Notifications(ctx context.Context, location *models.Coordinate) ([]*models.Alert, error)
	Preferences(ctx context.Context) (models.NotificationPreferences, error)
	SavePreferences(ctx context.Context, prefs models.NotificationPreferences) error
	SetConnectivity(ctx context.Context, online bool) error
	Online() bool
}

type alertService struct {
	repo     AlertRepository
	settings SettingsRepository
	engine   *engine.Engine
	sync     *syncctrl.Controller
	queue    syncctrl.PendingQueue
	logger   *logrus.Logger
}

// NewAlertService создает сервис оповещений
func NewAlertService(
	repo AlertRepository,
	settings SettingsRepository,
	eng *engine.Engine,
	sync *syncctrl.Controller,
	pendingQueue syncctrl.PendingQueue,
	logger *logrus.Logger,
) AlertService {
	return &alertService{
		repo:     repo,
		settings: settings,
		engine:   eng,
		sync:     sync,
		queue:    pendingQueue,
		logger:   logger,
	}
}

// CreateAlert создает новый репорт. В онлайне репорт сразу попадает в основную
// коллекцию. В офлайне он создается как pending с id из офлайн-пространства
// имен, показывается оптимистично и ставится в очередь на повторную отправку;
// сбой записи в очередь не блокирует создание - пользователь свой репорт видит.
func (s *alertService) CreateAlert(ctx context.Context, alert *models.Alert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "CreateAlert",
		"category": alert.Category,
	})

	alert.CreatedAt = time.Now().UTC()
	alert.LikeCount = 0
	alert.Comments = []models.Comment{}
	alert.IsResolved = false
	if alert.Author == "" {
		alert.Author = syncctrl.AnonymousAuthor
	}

	if s.sync.Online() {
		alert.ID = uuid.NewString()
		alert.IsPending = false

		log.Info("Creating alert")
		if err := s.repo.Create(ctx, alert); err != nil {
			log.WithError(err).Error("Failed to create alert in repository")
			return fmt.Errorf("service: could not create alert: %w", err)
		}
		log.WithField("alert_id", alert.ID).Info("Alert created successfully")
		return nil
	}

	// Офлайн-путь: pending-репорт с отличимым id
	alert.ID = queue.OfflineIDPrefix + uuid.NewString()
	alert.IsPending = true
	alert.Author = alert.Author + " (Offline)"

	log.WithField("alert_id", alert.ID).Info("Creating pending alert while offline")
	if err := s.repo.Create(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create pending alert in repository")
		return fmt.Errorf("service: could not create pending alert: %w", err)
	}

	if err := s.queue.Enqueue(ctx, alert); err != nil {
		// Сбой персистентной очереди не фатален: репорт уже создан и виден
		log.WithError(err).Warn("Failed to enqueue pending alert, replay will not be durable")
	}
	return nil
}

// GetAlert получает оповещение по id, сначала пробуя кэш
func (s *alertService) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "GetAlert",
		"alert_id": id,
	})

	cached, err := s.repo.GetAlertFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Alert cache read failed, falling back to repository")
	}
	if cached != nil {
		return cached, nil
	}

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get alert from repository")
		return nil, fmt.Errorf("service: could not get alert: %w", err)
	}

	if err := s.repo.SetAlertCache(ctx, alert); err != nil {
		log.WithError(err).Warn("Failed to cache alert")
	}
	return alert, nil
}

// ListAlerts возвращает страницу оповещений с необязательным фильтром категорий
func (s *alertService) ListAlerts(ctx context.Context, categories []models.Category, page, pageSize int) ([]*models.Alert, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "ListAlerts",
		"page":      page,
		"page_size": pageSize,
	})

	alerts, err := s.repo.List(ctx, categories, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// LikeAlert монотонно увеличивает счетчик лайков. Неизвестный id не трогает
// состояние и возвращает ErrNotFound.
func (s *alertService) LikeAlert(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "LikeAlert",
		"alert_id": id,
	})

	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to like a non-existent alert")
			return err
		}
		log.WithError(err).Error("Failed to like alert in repository")
		return fmt.Errorf("service: could not like alert: %w", err)
	}

	if err := s.repo.InvalidateAlertCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate alert cache")
	}
	return nil
}

// AddComment добавляет комментарий к оповещению. Комментарии только
// добавляются, порядок вставки совпадает с порядком отображения.
func (s *alertService) AddComment(ctx context.Context, alertID, author, text string) (*models.Comment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "AddComment",
		"alert_id": alertID,
	})

	if author == "" {
		author = syncctrl.AnonymousAuthor
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		AlertID:   alertID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AddComment(ctx, comment); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to comment on a non-existent alert")
			return nil, err
		}
		log.WithError(err).Error("Failed to add comment in repository")
		return nil, fmt.Errorf("service: could not add comment: %w", err)
	}

	if err := s.repo.InvalidateAlertCache(ctx, alertID); err != nil {
		log.WithError(err).Warn("Failed to invalidate alert cache")
	}
	return comment, nil
}

// ResolveAlert помечает оповещение решенным. Переход только false -> true,
// повторный вызов безвреден.
func (s *alertService) ResolveAlert(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "ResolveAlert",
		"alert_id": id,
	})

	if err := s.repo.Resolve(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to resolve a non-existent alert")
			return err
		}
		log.WithError(err).Error("Failed to resolve alert in repository")
		return fmt.Errorf("service: could not resolve alert: %w", err)
	}

	if err := s.repo.InvalidateAlertCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate alert cache")
	}

	log.Info("Alert resolved")
	return nil
}

// PriorityAlert вычисляет приоритетный баннер для точки пользователя
func (s *alertService) PriorityAlert(ctx context.Context, location models.Coordinate) (engine.PriorityResult, error) {
	alerts, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load alerts for priority selection")
		return engine.PriorityResult{Kind: engine.BannerNone}, fmt.Errorf("service: could not load alerts: %w", err)
	}

	return s.engine.PriorityAlert(ctx, alerts, location, !s.sync.Online()), nil
}

// Notifications строит список "недавних и ближайших" уведомлений по
// сохраненным настройкам пользователя
func (s *alertService) Notifications(ctx context.Context, location *models.Coordinate) ([]*models.Alert, error) {
	prefs, err := s.settings.GetPreferences(ctx)
	if err != nil {
		// Настройки недоступны - работаем на значениях по умолчанию
		s.logger.WithError(err).Warn("Failed to load notification preferences, using defaults")
		prefs = models.DefaultNotificationPreferences()
	}

	alerts, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load alerts for notifications")
		return nil, fmt.Errorf("service: could not load alerts: %w", err)
	}

	return s.engine.Notifications(alerts, location, prefs, time.Now()), nil
}

// Preferences возвращает сохраненные настройки уведомлений
func (s *alertService) Preferences(ctx context.Context) (models.NotificationPreferences, error) {
	return s.settings.GetPreferences(ctx)
}

// SavePreferences сохраняет настройки уведомлений
func (s *alertService) SavePreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	if err := s.settings.SavePreferences(ctx, prefs); err != nil {
		s.logger.WithError(err).Error("Failed to save notification preferences")
		return fmt.Errorf("service: could not save preferences: %w", err)
	}
	return nil
}

// SetConnectivity сообщает о переходе онлайн/офлайн. Переход в онлайн
// запускает сверку очереди отложенных репортов.
func (s *alertService) SetConnectivity(ctx context.Context, online bool) error {
	if !online {
		s.sync.SetOffline()
		return nil
	}
	return s.sync.SetOnline(ctx)
}

// Online сообщает текущее состояние связи
func (s *alertService) Online() bool {
	return s.sync.Online()
}
