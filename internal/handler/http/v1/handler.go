package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/civic_alert_system/internal/config"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/service"
	"github.com/shenikar/civic_alert_system/internal/ward"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	alertService   service.AlertService
	utilityService service.UtilityService
	wardResolver   *ward.Resolver
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
}

func NewHandler(
	alertService service.AlertService,
	utilityService service.UtilityService,
	wardResolver *ward.Resolver,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		alertService:   alertService,
		utilityService: utilityService,
		wardResolver:   wardResolver,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
	}
}

// parseCoordinate извлекает обязательную пару lat/lng из query-параметров
func parseCoordinate(c *gin.Context) (models.Coordinate, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Latitude: lat, Longitude: lng}, true
}

// @Summary Create a new alert
// @Description Create a new community alert. While offline, the alert is created as pending and queued for replay. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CreateAlertRequest true "Alert creation request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToAlertModel(input)
	if err := h.alertService.CreateAlert(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(model))
}

// @Summary Get a list of alerts
// @Description Get a paginated list of alerts, newest first, with an optional category filter. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Param category query string false "Comma-separated category filter, e.g. CRIME,POTHOLE"
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Unknown category"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	var categories []models.Category
	if raw := c.Query("category"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			category := models.Category(strings.TrimSpace(part))
			if !category.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
				return
			}
			categories = append(categories, category)
		}
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), categories, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert by ID
// @Description Get a single alert with its comments by ID. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.alertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		log.WithError(err).Error("Failed to get alert from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Like an alert
// @Description Increment the like counter of an alert. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/like [post]
func (h *Handler) likeAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "likeAlert").WithField("id", id)

	if err := h.alertService.LikeAlert(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		log.WithError(err).Error("Failed to like alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add a comment to an alert
// @Description Append a comment to an alert. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param comment body CommentRequest true "Comment request"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/comments [post]
func (h *Handler) addComment(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "addComment").WithField("id", id)

	var input CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.alertService.AddComment(c.Request.Context(), id, input.Author, input.Text)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		log.WithError(err).Error("Failed to add comment in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToCommentResponse(comment))
}

// @Summary Resolve an alert
// @Description Mark an alert as resolved. Resolving an already resolved alert is a no-op. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/resolve [post]
func (h *Handler) resolveAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "resolveAlert").WithField("id", id)

	if err := h.alertService.ResolveAlert(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		log.WithError(err).Error("Failed to resolve alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get the priority banner for a location
// @Description Select the single most important banner for the given coordinates: power outage over crime over weather advisory. Requires API key.
// @Tags Priority
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} PriorityResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /priority [get]
func (h *Handler) priorityAlert(c *gin.Context) {
	log := h.logger.WithField("method", "priorityAlert")

	location, ok := parseCoordinate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}

	result, err := h.alertService.PriorityAlert(c.Request.Context(), location)
	if err != nil {
		log.WithError(err).Error("Failed to compute priority alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, PriorityToResponse(result))
}

// @Summary Get notifications
// @Description Get alerts matching the stored notification preferences: recent or within the configured radius of the given coordinates. Coordinates are optional. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications [get]
func (h *Handler) notifications(c *gin.Context) {
	log := h.logger.WithField("method", "notifications")

	var location *models.Coordinate
	if c.Query("lat") != "" || c.Query("lng") != "" {
		coord, ok := parseCoordinate(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		location = &coord
	}

	alerts, err := h.alertService.Notifications(c.Request.Context(), location)
	if err != nil {
		log.WithError(err).Error("Failed to compute notifications in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get notification preferences
// @Description Get the stored notification preferences. Missing or corrupted stored values fall back to defaults. Requires API key.
// @Tags Preferences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} PreferencesDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /preferences [get]
func (h *Handler) getPreferences(c *gin.Context) {
	log := h.logger.WithField("method", "getPreferences")

	prefs, err := h.alertService.Preferences(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get preferences from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Update notification preferences
// @Description Replace the stored notification preferences. Requires API key.
// @Tags Preferences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param preferences body PreferencesDTO true "Notification preferences"
// @Success 200 {object} PreferencesDTO
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /preferences [put]
func (h *Handler) updatePreferences(c *gin.Context) {
	var input PreferencesDTO
	log := h.logger.WithField("method", "updatePreferences")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := DTOToPreferencesModel(input)
	if err := h.alertService.SavePreferences(c.Request.Context(), prefs); err != nil {
		log.WithError(err).Error("Failed to save preferences in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, input)
}

// @Summary Report connectivity change
// @Description Report the client going online or offline. Going online replays queued pending alerts. Requires API key.
// @Tags Connectivity
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param connectivity body ConnectivityRequest true "Connectivity change request"
// @Success 200 {object} ConnectivityResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /connectivity [post]
func (h *Handler) setConnectivity(c *gin.Context) {
	var input ConnectivityRequest
	log := h.logger.WithField("method", "setConnectivity")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alertService.SetConnectivity(c.Request.Context(), *input.Online); err != nil {
		log.WithError(err).Error("Failed to change connectivity state in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ConnectivityResponse{Online: h.alertService.Online()})
}

// @Summary Resolve the ward for a location
// @Description Find the municipal ward containing the given coordinates and its councilor. Requires API key.
// @Tags Wards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} WardResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No ward contains the location"
// @Router /wards/resolve [get]
func (h *Handler) resolveWard(c *gin.Context) {
	location, ok := parseCoordinate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}

	resolved := h.wardResolver.ResolveWard(location)
	if resolved == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ward not found"})
		return
	}

	resp := WardResponse{WardID: resolved.ID}
	if councilor := h.wardResolver.FindCouncilor(resolved.ID); councilor != nil {
		resp.Councilor = &CouncilorResponse{
			Name:        councilor.Name,
			Affiliation: councilor.Affiliation,
			Contact:     councilor.Contact,
			ImageURL:    councilor.ImageURL,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Search load shedding areas
// @Description Search load shedding areas by free text or by coordinates. Degrades to an empty list when the upstream API is unavailable. Requires API key.
// @Tags LoadShedding
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param text query string false "Free text query"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Success 200 {array} AreaResponse
// @Failure 400 {object} map[string]string "Missing text query or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /loadshedding/areas [get]
func (h *Handler) searchAreas(c *gin.Context) {
	if text := c.Query("text"); text != "" {
		areas := h.utilityService.SearchAreas(c.Request.Context(), text)
		c.JSON(http.StatusOK, ModelsToAreaResponses(areas))
		return
	}

	location, ok := parseCoordinate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text query or coordinates required"})
		return
	}

	areas := h.utilityService.SearchAreasByCoordinate(c.Request.Context(), location)
	c.JSON(http.StatusOK, ModelsToAreaResponses(areas))
}

// @Summary Save the load shedding area
// @Description Save the user's chosen load shedding area for status lookups. Requires API key.
// @Tags LoadShedding
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param area body SaveAreaRequest true "Area to save"
// @Success 200 {object} AreaResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /loadshedding/area [put]
func (h *Handler) saveArea(c *gin.Context) {
	var input SaveAreaRequest
	log := h.logger.WithField("method", "saveArea")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area := models.UtilityArea{ID: input.ID, Name: input.Name, Region: input.Region}
	if err := h.utilityService.SaveArea(c.Request.Context(), area); err != nil {
		log.WithError(err).Error("Failed to save utility area in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AreaResponse{ID: area.ID, Name: area.Name, Region: area.Region})
}

// @Summary Get load shedding status
// @Description Get the load shedding schedule for the saved area. Returns an empty schedule when no area is saved or the upstream API is unavailable. Requires API key.
// @Tags LoadShedding
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} UtilityStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /loadshedding/status [get]
func (h *Handler) loadSheddingStatus(c *gin.Context) {
	log := h.logger.WithField("method", "loadSheddingStatus")

	status, area, err := h.utilityService.Status(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get load shedding status from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatusToResponse(status, area))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "online": h.alertService.Online()})
}
