package models

// NotificationPreferences - пользовательские настройки уведомлений
type NotificationPreferences struct {
	PushEnabled       bool       `json:"push_enabled"`
	RadiusKm          float64    `json:"radius_km"`
	EnabledCategories []Category `json:"enabled_categories"`
}

// DefaultNotificationPreferences возвращает настройки по умолчанию:
// push включен, радиус 5 км, все категории включены
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		PushEnabled:       true,
		RadiusKm:          5,
		EnabledCategories: AllCategories(),
	}
}

// CategoryEnabled проверяет, включена ли категория в настройках
func (p NotificationPreferences) CategoryEnabled(c Category) bool {
	for _, enabled := range p.EnabledCategories {
		if enabled == c {
			return true
		}
	}
	return false
}

// UtilityArea - выбранная пользователем зона отключений электроэнергии
type UtilityArea struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// UtilityEvent - одно запланированное отключение в расписании зоны
type UtilityEvent struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Note  string `json:"note"`
}

// UtilityStatus - текущее расписание отключений для зоны
type UtilityStatus struct {
	ScheduleName string         `json:"schedule_name"`
	Events       []UtilityEvent `json:"events"`
}
