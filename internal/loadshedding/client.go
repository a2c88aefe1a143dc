package loadshedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://developer.sepush.co.za/business/2.0"

// Client - клиент API статуса отключений электроэнергии (EskomSePush 2.0)
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиент API статуса отключений
func NewClient(token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// areasResponse - ответ поисковых эндпоинтов areas_search и areas_nearby
type areasResponse struct {
	Areas []models.UtilityArea `json:"areas"`
}

// statusResponse - ответ эндпоинта area
type statusResponse struct {
	Schedule struct {
		Name string `json:"name"`
	} `json:"schedule"`
	Events []struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Note  string `json:"note"`
	} `json:"events"`
}

// SearchAreas ищет зоны по текстовому запросу. Возвращает пустой срез
// при отсутствии совпадений, сбое сети или ненастроенном токене.
func (c *Client) SearchAreas(ctx context.Context, query string) []models.UtilityArea {
	if c.token == "" {
		c.logger.Warn("Utility status API token is not configured")
		return []models.UtilityArea{}
	}

	endpoint := fmt.Sprintf("%s/areas_search?text=%s", c.baseURL, url.QueryEscape(query))
	return c.fetchAreas(ctx, endpoint)
}

// SearchAreasByCoordinate ищет зоны рядом с координатой. Возвращает пустой
// срез при любом сбое.
func (c *Client) SearchAreasByCoordinate(ctx context.Context, location models.Coordinate) []models.UtilityArea {
	if c.token == "" {
		c.logger.Warn("Utility status API token is not configured")
		return []models.UtilityArea{}
	}

	endpoint := fmt.Sprintf("%s/areas_nearby?lat=%f&lon=%f", c.baseURL, location.Latitude, location.Longitude)
	return c.fetchAreas(ctx, endpoint)
}

// GetStatus возвращает расписание отключений для зоны или nil при сбое
// либо ненастроенном токене
func (c *Client) GetStatus(ctx context.Context, areaID string) *models.UtilityStatus {
	if c.token == "" {
		c.logger.Warn("Utility status API token is not configured")
		return nil
	}

	endpoint := fmt.Sprintf("%s/area?id=%s", c.baseURL, url.QueryEscape(areaID))

	var parsed statusResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		c.logger.WithError(err).Warn("Failed to get utility status")
		return nil
	}

	status := &models.UtilityStatus{
		ScheduleName: parsed.Schedule.Name,
		Events:       make([]models.UtilityEvent, 0, len(parsed.Events)),
	}
	for _, e := range parsed.Events {
		status.Events = append(status.Events, models.UtilityEvent{
			Start: e.Start,
			End:   e.End,
			Note:  e.Note,
		})
	}
	return status
}

func (c *Client) fetchAreas(ctx context.Context, endpoint string) []models.UtilityArea {
	var parsed areasResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		c.logger.WithError(err).Warn("Failed to search utility areas")
		return []models.UtilityArea{}
	}
	if parsed.Areas == nil {
		return []models.UtilityArea{}
	}
	return parsed.Areas
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
