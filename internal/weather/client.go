package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client запрашивает у генеративной модели короткую погодную сводку
// в одно предложение для заданной точки
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиент погодных сводок
func NewClient(apiKey, model string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// generateRequest - тело запроса generateContent
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse - интересующая часть ответа generateContent
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Advise возвращает погодную сводку в одно предложение для точки.
// Любой сбой (сеть, ключ, квота) возвращается как ошибка: вызывающая сторона
// деградирует до отсутствия сводки и не показывает ошибку пользователю.
func (c *Client) Advise(ctx context.Context, location models.Coordinate) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("weather advisory API key is not configured")
	}

	prompt := fmt.Sprintf(
		"Based on the current time and hyperlocal weather data for latitude %f and longitude %f in South Africa, "+
			"provide a concise, one-sentence weather alert. "+
			"Example: 'Heavy rain expected in 20 mins.' or 'Strong winds developing this afternoon.'",
		location.Latitude, location.Longitude,
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal advisory request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create advisory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisory request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode advisory response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisory response contains no candidates")
	}

	advisory := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if advisory == "" {
		return "", fmt.Errorf("advisory response is empty")
	}

	c.logger.WithField("advisory", advisory).Debug("Weather advisory received")
	return advisory, nil
}
