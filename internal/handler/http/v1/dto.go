package v1

import (
	"time"
)

// CreateAlertRequest DTO для создания репорта
// @Description DTO для создания репорта
type CreateAlertRequest struct {
	Author      string  `json:"author,omitempty"`
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	Category    string  `json:"category" validate:"required,oneof=CRIME POTHOLE WEATHER TRAFFIC POWER_OUTAGE WATER_ISSUE OTHER"`
	Latitude    float64 `json:"latitude" validate:"required,latitude"`
	Longitude   float64 `json:"longitude" validate:"required,longitude"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,url"`
}

// CommentRequest DTO для добавления комментария
// @Description DTO для добавления комментария
type CommentRequest struct {
	Author string `json:"author,omitempty" validate:"max=255"`
	Text   string `json:"text" validate:"required,min=1,max=1000"`
}

// CommentResponse DTO комментария в ответе
// @Description DTO комментария в ответе
type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
}

// AlertResponse DTO для ответа с информацией о репорте
// @Description DTO для ответа с информацией о репорте
type AlertResponse struct {
	ID            string            `json:"id"`
	Author        string            `json:"author"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Category      string            `json:"category"`
	CategoryLabel string            `json:"category_label"`
	CategoryColor string            `json:"category_color"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	ImageURL      string            `json:"image_url,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	TimeAgo       string            `json:"time_ago"`
	LikeCount     int               `json:"like_count"`
	Comments      []CommentResponse `json:"comments"`
	IsResolved    bool              `json:"is_resolved"`
	IsPending     bool              `json:"is_pending"`
}

// PriorityResponse DTO приоритетного баннера для точки пользователя
// @Description DTO приоритетного баннера для точки пользователя
type PriorityResponse struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message,omitempty"`
	Alert   *AlertResponse `json:"alert,omitempty"`
}

// PreferencesDTO DTO настроек уведомлений (запрос и ответ)
// @Description DTO настроек уведомлений
type PreferencesDTO struct {
	PushEnabled       bool     `json:"push_enabled"`
	RadiusKm          float64  `json:"radius_km" validate:"required,gt=0,lte=100"`
	EnabledCategories []string `json:"enabled_categories" validate:"required,dive,oneof=CRIME POTHOLE WEATHER TRAFFIC POWER_OUTAGE WATER_ISSUE OTHER"`
}

// ConnectivityRequest DTO для смены состояния связи
// @Description DTO для смены состояния связи
type ConnectivityRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// ConnectivityResponse DTO текущего состояния связи
// @Description DTO текущего состояния связи
type ConnectivityResponse struct {
	Online bool `json:"online"`
}

// CouncilorResponse DTO представителя округа
// @Description DTO представителя округа
type CouncilorResponse struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"image_url,omitempty"`
}

// WardResponse DTO результата определения округа по координате
// @Description DTO результата определения округа по координате
type WardResponse struct {
	WardID    string             `json:"ward_id"`
	Councilor *CouncilorResponse `json:"councilor,omitempty"`
}

// AreaResponse DTO зоны отключений
// @Description DTO зоны отключений
type AreaResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// SaveAreaRequest DTO для сохранения выбранной зоны отключений
// @Description DTO для сохранения выбранной зоны отключений
type SaveAreaRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Region string `json:"region,omitempty"`
}

// UtilityEventResponse DTO одного запланированного отключения
// @Description DTO одного запланированного отключения
type UtilityEventResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Note  string `json:"note,omitempty"`
}

// UtilityStatusResponse DTO расписания отключений для сохраненной зоны
// @Description DTO расписания отключений для сохраненной зоны
type UtilityStatusResponse struct {
	Area         *AreaResponse          `json:"area,omitempty"`
	ScheduleName string                 `json:"schedule_name,omitempty"`
	Events       []UtilityEventResponse `json:"events"`
}
