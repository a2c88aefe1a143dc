package engine

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/shenikar/civic_alert_system/internal/geo"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// BannerKind - тип приоритетного баннера
type BannerKind string

const (
	BannerNone        BannerKind = "NONE"
	BannerPowerOutage BannerKind = "POWER_OUTAGE"
	BannerCrime       BannerKind = "CRIME"
	BannerWeather     BannerKind = "WEATHER"
)

// WeatherAdvisor определяет контракт внешнего источника погодных сводок.
// Возвращает короткую сводку в одно предложение для заданной точки.
type WeatherAdvisor interface {
	Advise(ctx context.Context, location models.Coordinate) (string, error)
}

// PriorityResult - результат выбора приоритетного оповещения
type PriorityResult struct {
	Kind    BannerKind    `json:"kind"`
	Message string        `json:"message,omitempty"`
	Alert   *models.Alert `json:"alert,omitempty"`
}

// Engine вычисляет приоритетное оповещение и список "недавних и ближайших"
// уведомлений. Оба вычисления детерминированы относительно своих входов.
type Engine struct {
	radiusKm float64
	advisor  WeatherAdvisor
	logger   *logrus.Logger

	// Монотонный счетчик погодных запросов: ответ применяется, только если
	// с момента его отправки не стартовал более новый запрос
	weatherSeq atomic.Uint64
}

// NewEngine создает движок релевантности с фиксированным радиусом приоритета
func NewEngine(radiusKm float64, advisor WeatherAdvisor, logger *logrus.Logger) *Engine {
	return &Engine{
		radiusKm: radiusKm,
		advisor:  advisor,
		logger:   logger,
	}
}

// PriorityAlert выбирает единственное приоритетное оповещение для точки.
// Фиксированная политика: отключение электроэнергии > преступление > погодная
// сводка. Решенные оповещения и оповещения за пределами радиуса исключаются.
// В офлайне внешний погодный запрос не выполняется. Сбой погодного источника
// деградирует до отсутствия баннера, ошибка пользователю не показывается.
func (e *Engine) PriorityAlert(ctx context.Context, alerts []*models.Alert, location models.Coordinate, offline bool) PriorityResult {
	candidates := make([]*models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.IsResolved {
			continue
		}
		if geo.DistanceKm(location, alert.Location) >= e.radiusKm {
			continue
		}
		candidates = append(candidates, alert)
	}

	// Стабильная сортировка: при равном времени сохраняется порядок коллекции
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	for _, alert := range candidates {
		if alert.Category == models.CategoryPowerOutage {
			return PriorityResult{Kind: BannerPowerOutage, Message: alert.Title, Alert: alert}
		}
	}

	for _, alert := range candidates {
		if alert.Category == models.CategoryCrime {
			return PriorityResult{Kind: BannerCrime, Message: alert.Title, Alert: alert}
		}
	}

	if offline {
		return PriorityResult{Kind: BannerNone}
	}

	seq := e.weatherSeq.Add(1)
	advisory, err := e.advisor.Advise(ctx, location)
	if err != nil {
		e.logger.WithError(err).Warn("Weather advisory unavailable, degrading silently")
		return PriorityResult{Kind: BannerNone}
	}

	// Устаревший ответ отбрасывается: с тех пор стартовал более новый запрос
	if e.weatherSeq.Load() != seq {
		e.logger.WithField("seq", seq).Debug("Discarding stale weather advisory")
		return PriorityResult{Kind: BannerNone}
	}

	return PriorityResult{Kind: BannerWeather, Message: advisory}
}

// Notifications строит список "недавних и ближайших" уведомлений.
// Оповещение включается, если его категория разрешена настройками и оно либо
// создано строго позже чем 3 дня назад, либо находится в пределах RadiusKm от
// известной точки пользователя (включительно). Решенные оповещения намеренно
// не исключаются. Результат отсортирован по времени создания по убыванию.
func (e *Engine) Notifications(alerts []*models.Alert, location *models.Coordinate, prefs models.NotificationPreferences, now time.Time) []*models.Alert {
	recentThreshold := now.AddDate(0, 0, -3)

	result := make([]*models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if !prefs.CategoryEnabled(alert.Category) {
			continue
		}

		recent := alert.CreatedAt.After(recentThreshold)
		nearby := location != nil && geo.DistanceKm(*location, alert.Location) <= prefs.RadiusKm

		if recent || nearby {
			result = append(result, alert)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}
