package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1.
// Health-check открыт, остальные маршруты требуют API-ключ.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Маршруты для репортов сообщества
	alerts := protected.Group("/alerts")
	{
		alerts.POST("", h.createAlert)
		alerts.GET("", h.listAlerts)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/like", h.likeAlert)
		alerts.POST("/:id/comments", h.addComment)
		alerts.POST("/:id/resolve", h.resolveAlert)
	}

	// Приоритетный баннер и уведомления для точки пользователя
	protected.GET("/priority", h.priorityAlert)
	protected.GET("/notifications", h.notifications)

	// Настройки уведомлений
	protected.GET("/preferences", h.getPreferences)
	protected.PUT("/preferences", h.updatePreferences)

	// Состояние связи клиента
	protected.POST("/connectivity", h.setConnectivity)

	// Определение округа по координате
	protected.GET("/wards/resolve", h.resolveWard)

	// Статус отключений электроэнергии
	loadshedding := protected.Group("/loadshedding")
	{
		loadshedding.GET("/areas", h.searchAreas)
		loadshedding.PUT("/area", h.saveArea)
		loadshedding.GET("/status", h.loadSheddingStatus)
	}
}
