package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shenikar/civic_alert_system/internal/engine"
	engine_mocks "github.com/shenikar/civic_alert_system/internal/engine/mocks"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/queue"
	"github.com/shenikar/civic_alert_system/internal/service/mocks"
	syncctrl "github.com/shenikar/civic_alert_system/internal/sync"
	sync_mocks "github.com/shenikar/civic_alert_system/internal/sync/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type alertServiceMocks struct {
	repo     *mocks.MockAlertRepository
	settings *mocks.MockSettingsRepository
	queue    *sync_mocks.MockPendingQueue
	advisor  *engine_mocks.MockWeatherAdvisor
}

// newTestAlertService - вспомогательная функция для создания сервиса с моками
func newTestAlertService(t *testing.T, online bool) (*alertService, alertServiceMocks) {
	ctrl := gomock.NewController(t)
	m := alertServiceMocks{
		repo:     mocks.NewMockAlertRepository(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
		queue:    sync_mocks.NewMockPendingQueue(ctrl),
		advisor:  engine_mocks.NewMockWeatherAdvisor(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	eng := engine.NewEngine(5, m.advisor, logger)
	controller := syncctrl.NewController(m.queue, m.repo, logger, online)

	svc := NewAlertService(m.repo, m.settings, eng, controller, m.queue, logger)
	return svc.(*alertService), m
}

func TestCreateAlert_Online(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	alert := &models.Alert{
		Title:    "Pothole on M1",
		Category: models.CategoryPothole,
		Location: models.Coordinate{Latitude: -26.1, Longitude: 28.05},
	}

	// Ожидания
	m.repo.EXPECT().Create(ctx, alert).Return(nil).Times(1)
	m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := svc.CreateAlert(ctx, alert)

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.False(t, strings.HasPrefix(alert.ID, queue.OfflineIDPrefix))
	assert.False(t, alert.IsPending)
	assert.Equal(t, syncctrl.AnonymousAuthor, alert.Author)
	assert.Zero(t, alert.LikeCount)
	assert.False(t, alert.IsResolved)
}

func TestCreateAlert_OfflineEnqueuesPending(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, false)
	ctx := context.Background()
	alert := &models.Alert{
		Title:    "Power out in Rosebank",
		Category: models.CategoryPowerOutage,
	}

	// Ожидания: репорт создается оптимистично и ставится в очередь
	m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	m.queue.EXPECT().
		Enqueue(ctx, gomock.Any()).
		Do(func(_ context.Context, a *models.Alert) {
			assert.True(t, a.IsPending)
			assert.True(t, strings.HasPrefix(a.ID, queue.OfflineIDPrefix))
		}).
		Return(nil).
		Times(1)

	// Действие
	err := svc.CreateAlert(ctx, alert)

	// Проверки
	require.NoError(t, err)
	assert.True(t, alert.IsPending)
	assert.Contains(t, alert.Author, "(Offline)")
}

func TestCreateAlert_OfflineQueueFailureStillSucceeds(t *testing.T) {
	// Подготовка: сбой персистентной очереди не блокирует создание репорта
	svc, m := newTestAlertService(t, false)
	ctx := context.Background()
	alert := &models.Alert{Title: "Water leak", Category: models.CategoryWaterIssue}

	// Ожидания
	m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(fmt.Errorf("storage quota exceeded")).Times(1)

	// Действие
	err := svc.CreateAlert(ctx, alert)

	// Проверки
	require.NoError(t, err)
	assert.True(t, alert.IsPending)
}

func TestGetAlert_FromCache(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	expected := &models.Alert{ID: "alert-1", Title: "Cached alert"}

	// Ожидания
	m.repo.EXPECT().GetAlertFromCache(ctx, "alert-1").Return(expected, nil).Times(1)

	// Действие
	alert, err := svc.GetAlert(ctx, "alert-1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, alert)
}

func TestGetAlert_FromRepository(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	expected := &models.Alert{ID: "alert-1", Title: "Stored alert"}

	// Ожидания: промах кеша, чтение из бд, запись в кеш
	m.repo.EXPECT().GetAlertFromCache(ctx, "alert-1").Return(nil, nil).Times(1)
	m.repo.EXPECT().GetByID(ctx, "alert-1").Return(expected, nil).Times(1)
	m.repo.EXPECT().SetAlertCache(ctx, expected).Return(nil).Times(1)

	// Действие
	alert, err := svc.GetAlert(ctx, "alert-1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, alert)
}

func TestGetAlert_NotFound(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().GetAlertFromCache(ctx, "missing").Return(nil, nil).Times(1)
	m.repo.EXPECT().GetByID(ctx, "missing").Return(nil, fmt.Errorf("alert with id missing: %w", ErrNotFound)).Times(1)

	// Действие
	alert, err := svc.GetAlert(ctx, "missing")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeAlert_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().IncrementLikes(ctx, "alert-1").Return(nil).Times(1)
	m.repo.EXPECT().InvalidateAlertCache(ctx, "alert-1").Return(nil).Times(1)

	// Действие
	err := svc.LikeAlert(ctx, "alert-1")

	// Проверки
	require.NoError(t, err)
}

func TestLikeAlert_NotFound(t *testing.T) {
	// Подготовка: лайк несуществующего оповещения не трогает состояние
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().IncrementLikes(ctx, "missing").Return(fmt.Errorf("alert with id missing: %w", ErrNotFound)).Times(1)
	m.repo.EXPECT().InvalidateAlertCache(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := svc.LikeAlert(ctx, "missing")

	// Проверки
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().
		AddComment(ctx, gomock.Any()).
		Do(func(_ context.Context, c *models.Comment) {
			assert.Equal(t, "alert-1", c.AlertID)
			assert.Equal(t, syncctrl.AnonymousAuthor, c.Author)
			assert.Equal(t, "Stay safe out there", c.Text)
			assert.NotEmpty(t, c.ID)
		}).
		Return(nil).
		Times(1)
	m.repo.EXPECT().InvalidateAlertCache(ctx, "alert-1").Return(nil).Times(1)

	// Действие
	comment, err := svc.AddComment(ctx, "alert-1", "", "Stay safe out there")

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, "Stay safe out there", comment.Text)
}

func TestResolveAlert_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()

	// Ожидания
	m.repo.EXPECT().Resolve(ctx, "alert-1").Return(nil).Times(1)
	m.repo.EXPECT().InvalidateAlertCache(ctx, "alert-1").Return(nil).Times(1)

	// Действие
	err := svc.ResolveAlert(ctx, "alert-1")

	// Проверки
	require.NoError(t, err)
}

func TestPriorityAlert_SelectsOutage(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	location := models.Coordinate{Latitude: -26.2041, Longitude: 28.0473}
	alerts := []*models.Alert{
		{ID: "outage", Category: models.CategoryPowerOutage, Location: location, CreatedAt: time.Now()},
	}

	// Ожидания
	m.repo.EXPECT().ListAll(ctx).Return(alerts, nil).Times(1)

	// Действие
	result, err := svc.PriorityAlert(ctx, location)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, engine.BannerPowerOutage, result.Kind)
}

func TestPriorityAlert_OfflineSkipsWeather(t *testing.T) {
	// Подготовка: в офлайне движок не ходит за погодной сводкой
	svc, m := newTestAlertService(t, false)
	ctx := context.Background()
	location := models.Coordinate{Latitude: -26.2, Longitude: 28.04}

	// Ожидания
	m.repo.EXPECT().ListAll(ctx).Return(nil, nil).Times(1)
	m.advisor.EXPECT().Advise(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.PriorityAlert(ctx, location)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, engine.BannerNone, result.Kind)
}

func TestNotifications_UsesStoredPreferences(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	location := models.Coordinate{Latitude: -26.2041, Longitude: 28.0473}
	prefs := models.NotificationPreferences{
		PushEnabled:       true,
		RadiusKm:          5,
		EnabledCategories: []models.Category{models.CategoryCrime},
	}
	alerts := []*models.Alert{
		{ID: "crime", Category: models.CategoryCrime, Location: location, CreatedAt: time.Now()},
		{ID: "pothole", Category: models.CategoryPothole, Location: location, CreatedAt: time.Now()},
	}

	// Ожидания
	m.settings.EXPECT().GetPreferences(ctx).Return(prefs, nil).Times(1)
	m.repo.EXPECT().ListAll(ctx).Return(alerts, nil).Times(1)

	// Действие
	result, err := svc.Notifications(ctx, &location)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "crime", result[0].ID)
}

func TestNotifications_PreferencesFailureFallsBackToDefaults(t *testing.T) {
	// Подготовка: недоступные настройки заменяются значениями по умолчанию
	svc, m := newTestAlertService(t, true)
	ctx := context.Background()
	location := models.Coordinate{Latitude: -26.2041, Longitude: 28.0473}
	alerts := []*models.Alert{
		{ID: "recent", Category: models.CategoryTraffic, Location: location, CreatedAt: time.Now()},
	}

	// Ожидания
	m.settings.EXPECT().
		GetPreferences(ctx).
		Return(models.NotificationPreferences{}, fmt.Errorf("storage unavailable")).
		Times(1)
	m.repo.EXPECT().ListAll(ctx).Return(alerts, nil).Times(1)

	// Действие
	result, err := svc.Notifications(ctx, &location)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestSetConnectivity_OnlineTriggersReconcile(t *testing.T) {
	// Подготовка: переход офлайн -> онлайн сверяет очередь
	svc, m := newTestAlertService(t, false)
	ctx := context.Background()
	pending := []*models.Alert{
		{ID: "offline-1", IsPending: true, Author: "Anonymous (Offline)"},
	}

	// Ожидания
	m.queue.EXPECT().ListPending(ctx).Return(pending, nil).Times(1)
	m.repo.EXPECT().
		Merge(ctx, gomock.Any()).
		Do(func(_ context.Context, a *models.Alert) {
			assert.False(t, a.IsPending)
			assert.Equal(t, syncctrl.AnonymousAuthor, a.Author)
		}).
		Return(nil).
		Times(1)
	m.queue.EXPECT().Clear(ctx).Return(nil).Times(1)

	// Действие
	err := svc.SetConnectivity(ctx, true)

	// Проверки
	require.NoError(t, err)
	assert.True(t, svc.Online())
}

func TestSetConnectivity_Offline(t *testing.T) {
	// Подготовка
	svc, m := newTestAlertService(t, true)

	// Ожидания: никаких обращений к очереди
	m.queue.EXPECT().ListPending(gomock.Any()).Times(0)

	// Действие
	err := svc.SetConnectivity(context.Background(), false)

	// Проверки
	require.NoError(t, err)
	assert.False(t, svc.Online())
}
