package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type utilityServiceMocks struct {
	client   *mocks.MockUtilityClient
	settings *mocks.MockSettingsRepository
}

// newTestUtilityService - вспомогательная функция для создания сервиса с моками
func newTestUtilityService(t *testing.T) (UtilityService, utilityServiceMocks) {
	ctrl := gomock.NewController(t)
	m := utilityServiceMocks{
		client:   mocks.NewMockUtilityClient(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return NewUtilityService(m.client, m.settings, logger), m
}

func TestUtilityStatus_NoSavedArea(t *testing.T) {
	// Подготовка: зона не выбрана - статус отсутствует, но это не ошибка
	svc, m := newTestUtilityService(t)
	ctx := context.Background()

	// Ожидания
	m.settings.EXPECT().GetUtilityArea(ctx).Return(nil, nil).Times(1)
	m.client.EXPECT().GetStatus(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	status, area, err := svc.Status(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.Nil(t, area)
}

func TestUtilityStatus_SavedArea(t *testing.T) {
	// Подготовка
	svc, m := newTestUtilityService(t)
	ctx := context.Background()
	saved := &models.UtilityArea{ID: "jhbcitypower2-4-rosebank", Name: "Rosebank (4)", Region: "JHB City Power"}
	expected := &models.UtilityStatus{ScheduleName: "Rosebank (4)"}

	// Ожидания
	m.settings.EXPECT().GetUtilityArea(ctx).Return(saved, nil).Times(1)
	m.client.EXPECT().GetStatus(ctx, saved.ID).Return(expected).Times(1)

	// Действие
	status, area, err := svc.Status(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, status)
	assert.Equal(t, saved, area)
}

func TestUtilityStatus_SettingsFailure(t *testing.T) {
	// Подготовка: недоступные настройки деградируют к пустому статусу
	svc, m := newTestUtilityService(t)
	ctx := context.Background()

	// Ожидания
	m.settings.EXPECT().GetUtilityArea(ctx).Return(nil, fmt.Errorf("storage unavailable")).Times(1)
	m.client.EXPECT().GetStatus(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	status, area, err := svc.Status(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.Nil(t, area)
}

func TestUtilitySaveArea(t *testing.T) {
	// Подготовка
	svc, m := newTestUtilityService(t)
	ctx := context.Background()
	area := models.UtilityArea{ID: "jhbcitypower2-4-rosebank", Name: "Rosebank (4)", Region: "JHB City Power"}

	// Ожидания
	m.settings.EXPECT().SaveUtilityArea(ctx, area).Return(nil).Times(1)

	// Действие
	err := svc.SaveArea(ctx, area)

	// Проверки
	require.NoError(t, err)
}

func TestUtilitySearchAreas(t *testing.T) {
	// Подготовка
	svc, m := newTestUtilityService(t)
	ctx := context.Background()
	areas := []models.UtilityArea{{ID: "a-1", Name: "Sandton (7)"}}

	// Ожидания
	m.client.EXPECT().SearchAreas(ctx, "sandton").Return(areas).Times(1)

	// Действие
	result := svc.SearchAreas(ctx, "sandton")

	// Проверки
	assert.Equal(t, areas, result)
}
