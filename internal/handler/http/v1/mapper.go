package v1

import (
	"github.com/shenikar/civic_alert_system/internal/engine"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/timeago"
)

// DTOToAlertModel преобразует DTO создания в доменную модель
func DTOToAlertModel(dto CreateAlertRequest) *models.Alert {
	return &models.Alert{
		Author:      dto.Author,
		Title:       dto.Title,
		Description: dto.Description,
		Category:    models.Category(dto.Category),
		Location: models.Coordinate{
			Latitude:  dto.Latitude,
			Longitude: dto.Longitude,
		},
		ImageURL: dto.ImageURL,
	}
}

// ModelToAlertResponse преобразует доменную модель в DTO для ответа.
// Относительное время считается на момент маппинга.
func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	details := models.DetailsFor(model.Category)

	comments := make([]CommentResponse, len(model.Comments))
	for i, c := range model.Comments {
		comments[i] = CommentResponse{
			ID:        c.ID,
			Author:    c.Author,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			TimeAgo:   timeago.Since(c.CreatedAt, false),
		}
	}

	return &AlertResponse{
		ID:            model.ID,
		Author:        model.Author,
		Title:         model.Title,
		Description:   model.Description,
		Category:      string(model.Category),
		CategoryLabel: details.Label,
		CategoryColor: details.Color,
		Latitude:      model.Location.Latitude,
		Longitude:     model.Location.Longitude,
		ImageURL:      model.ImageURL,
		CreatedAt:     model.CreatedAt,
		TimeAgo:       timeago.Since(model.CreatedAt, false),
		LikeCount:     model.LikeCount,
		Comments:      comments,
		IsResolved:    model.IsResolved,
		IsPending:     model.IsPending,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(alerts []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = ModelToAlertResponse(alert)
	}
	return responses
}

// ModelToCommentResponse преобразует комментарий в DTO для ответа
func ModelToCommentResponse(model *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        model.ID,
		Author:    model.Author,
		Text:      model.Text,
		CreatedAt: model.CreatedAt,
		TimeAgo:   timeago.Since(model.CreatedAt, false),
	}
}

// PriorityToResponse преобразует результат выбора приоритетного баннера в DTO
func PriorityToResponse(result engine.PriorityResult) *PriorityResponse {
	resp := &PriorityResponse{
		Kind:    string(result.Kind),
		Message: result.Message,
	}
	if result.Alert != nil {
		resp.Alert = ModelToAlertResponse(result.Alert)
	}
	return resp
}

// ModelToPreferencesDTO преобразует настройки уведомлений в DTO
func ModelToPreferencesDTO(prefs models.NotificationPreferences) PreferencesDTO {
	categories := make([]string, len(prefs.EnabledCategories))
	for i, c := range prefs.EnabledCategories {
		categories[i] = string(c)
	}
	return PreferencesDTO{
		PushEnabled:       prefs.PushEnabled,
		RadiusKm:          prefs.RadiusKm,
		EnabledCategories: categories,
	}
}

// DTOToPreferencesModel преобразует DTO настроек в доменную модель
func DTOToPreferencesModel(dto PreferencesDTO) models.NotificationPreferences {
	categories := make([]models.Category, len(dto.EnabledCategories))
	for i, c := range dto.EnabledCategories {
		categories[i] = models.Category(c)
	}
	return models.NotificationPreferences{
		PushEnabled:       dto.PushEnabled,
		RadiusKm:          dto.RadiusKm,
		EnabledCategories: categories,
	}
}

// ModelsToAreaResponses преобразует слайс зон отключений в слайс DTO
func ModelsToAreaResponses(areas []models.UtilityArea) []AreaResponse {
	responses := make([]AreaResponse, len(areas))
	for i, area := range areas {
		responses[i] = AreaResponse{
			ID:     area.ID,
			Name:   area.Name,
			Region: area.Region,
		}
	}
	return responses
}

// StatusToResponse преобразует расписание отключений в DTO для ответа
func StatusToResponse(status *models.UtilityStatus, area *models.UtilityArea) *UtilityStatusResponse {
	resp := &UtilityStatusResponse{Events: []UtilityEventResponse{}}
	if area != nil {
		resp.Area = &AreaResponse{ID: area.ID, Name: area.Name, Region: area.Region}
	}
	if status != nil {
		resp.ScheduleName = status.ScheduleName
		for _, e := range status.Events {
			resp.Events = append(resp.Events, UtilityEventResponse{
				Start: e.Start,
				End:   e.End,
				Note:  e.Note,
			})
		}
	}
	return resp
}
