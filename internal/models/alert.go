package models

import (
	"time"
)

// Category - закрытое перечисление типов оповещений
type Category string

const (
	CategoryCrime       Category = "CRIME"
	CategoryPothole     Category = "POTHOLE"
	CategoryWeather     Category = "WEATHER"
	CategoryTraffic     Category = "TRAFFIC"
	CategoryPowerOutage Category = "POWER_OUTAGE"
	CategoryWaterIssue  Category = "WATER_ISSUE"
	CategoryOther       Category = "OTHER"
)

// AllCategories возвращает все известные категории в фиксированном порядке
func AllCategories() []Category {
	return []Category{
		CategoryCrime,
		CategoryPothole,
		CategoryWeather,
		CategoryTraffic,
		CategoryPowerOutage,
		CategoryWaterIssue,
		CategoryOther,
	}
}

// IsValid проверяет, что категория входит в закрытое перечисление
func (c Category) IsValid() bool {
	switch c {
	case CategoryCrime, CategoryPothole, CategoryWeather, CategoryTraffic,
		CategoryPowerOutage, CategoryWaterIssue, CategoryOther:
		return true
	}
	return false
}

// CategoryDetails - статические метаданные отображения для категории
type CategoryDetails struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// categoryDetails - статическая таблица: категория -> метаданные отображения
var categoryDetails = map[Category]CategoryDetails{
	CategoryCrime:       {Label: "Crime", Color: "alert-crime"},
	CategoryPothole:     {Label: "Pothole", Color: "alert-pothole"},
	CategoryWeather:     {Label: "Weather", Color: "alert-weather"},
	CategoryTraffic:     {Label: "Traffic", Color: "alert-traffic"},
	CategoryPowerOutage: {Label: "Power Outage", Color: "alert-power"},
	CategoryWaterIssue:  {Label: "Water Issue", Color: "alert-water"},
	CategoryOther:       {Label: "Other", Color: "alert-other"},
}

// DetailsFor возвращает метаданные отображения для категории.
// Для неизвестной категории возвращает метаданные CategoryOther.
func DetailsFor(c Category) CategoryDetails {
	if d, ok := categoryDetails[c]; ok {
		return d
	}
	return categoryDetails[CategoryOther]
}

// Coordinate - неизменяемая пара координат в градусах
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Comment - комментарий к оповещению, принадлежит ровно одному Alert
type Comment struct {
	ID        string    `json:"id"`
	AlertID   string    `json:"alert_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert представляет одно сообщение об инциденте (от пользователя или системы)
type Alert struct {
	ID          string     `json:"id"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Location    Coordinate `json:"location"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LikeCount   int        `json:"like_count"`
	Comments    []Comment  `json:"comments"`
	IsResolved  bool       `json:"is_resolved"`
	IsPending   bool       `json:"is_pending"`
}
