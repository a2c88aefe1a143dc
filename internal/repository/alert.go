package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_alert_system/internal/models"
	"github.com/shenikar/civic_alert_system/internal/service"
)

const alertCacheTTL = 5 * time.Minute

type AlertRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewAlertRepository(db *pgxpool.Pool, redisClient *redis.Client) service.AlertRepository {
	return &AlertRepository{
		db:          db,
		redisClient: redisClient,
	}
}

const alertColumns = `
	id,
	author,
	title,
	description,
	category,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	image_url,
	created_at,
	like_count,
	is_resolved,
	is_pending
`

// Create создает новую запись об оповещении в бд
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (id, author, title, description, category, location, image_url, created_at, like_count, is_resolved, is_pending)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326), $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.Author,
		alert.Title,
		alert.Description,
		alert.Category,
		alert.Location.Longitude,
		alert.Location.Latitude,
		alert.ImageURL,
		alert.CreatedAt,
		alert.LikeCount,
		alert.IsResolved,
		alert.IsPending,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// GetByID возвращает оповещение по id вместе с комментариями
func (r *AlertRepository) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	alert := &models.Alert{}
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1;`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&alert.ID,
		&alert.Author,
		&alert.Title,
		&alert.Description,
		&alert.Category,
		&alert.Location.Latitude,
		&alert.Location.Longitude,
		&alert.ImageURL,
		&alert.CreatedAt,
		&alert.LikeCount,
		&alert.IsResolved,
		&alert.IsPending,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}

	if err := r.attachComments(ctx, []*models.Alert{alert}); err != nil {
		return nil, err
	}
	return alert, nil
}

// List возвращает страницу оповещений, самые новые первыми.
// Пустой срез категорий означает отсутствие фильтра.
func (r *AlertRepository) List(ctx context.Context, categories []models.Category, page, pageSize int) ([]*models.Alert, error) {
	offset := (page - 1) * pageSize

	query := `SELECT ` + alertColumns + `
		FROM alerts
		WHERE ($1::text[] IS NULL OR category = ANY($1))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	var filter []string
	if len(categories) > 0 {
		filter = make([]string, 0, len(categories))
		for _, c := range categories {
			filter = append(filter, string(c))
		}
	}

	rows, err := r.db.Query(ctx, query, filter, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts, err := scanAlerts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachComments(ctx, alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListAll возвращает полный набор оповещений для движка релевантности
func (r *AlertRepository) ListAll(ctx context.Context) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// IncrementLikes монотонно увеличивает счетчик лайков
func (r *AlertRepository) IncrementLikes(ctx context.Context, id string) error {
	query := `UPDATE alerts SET like_count = like_count + 1 WHERE id = $1;`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to like alert: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// AddComment добавляет комментарий к оповещению
func (r *AlertRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, alert_id, author, text, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.AlertID,
		comment.Author,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		var pgErr interface{ SQLState() string }
		// 23503 - нарушение внешнего ключа: оповещения не существует
		if errors.As(err, &pgErr) && pgErr.SQLState() == "23503" {
			return fmt.Errorf("alert with id %s: %w", comment.AlertID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// Resolve помечает оповещение решенным. Переход только в одну сторону,
// повторный вызов ничего не меняет.
func (r *AlertRepository) Resolve(ctx context.Context, id string) error {
	query := `UPDATE alerts SET is_resolved = TRUE WHERE id = $1;`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// Merge сливает оповещение в коллекцию по его id: существующая запись
// обновляется, отсутствующая вставляется. Используется сверкой офлайн-очереди,
// чтобы оптимистично показанный репорт не задублировался.
func (r *AlertRepository) Merge(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (id, author, title, description, category, location, image_url, created_at, like_count, is_resolved, is_pending)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326), $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			author = EXCLUDED.author,
			is_pending = EXCLUDED.is_pending;
	`
	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.Author,
		alert.Title,
		alert.Description,
		alert.Category,
		alert.Location.Longitude,
		alert.Location.Latitude,
		alert.ImageURL,
		alert.CreatedAt,
		alert.LikeCount,
		alert.IsResolved,
		alert.IsPending,
	)
	if err != nil {
		return fmt.Errorf("failed to merge alert: %w", err)
	}
	return nil
}

// GetAlertFromCache пытается получить оповещение из Redis
func (r *AlertRepository) GetAlertFromCache(ctx context.Context, id string) (*models.Alert, error) {
	key := fmt.Sprintf("alert:%s", id)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert from cache: %w", err)
	}

	alert := &models.Alert{}
	if err := json.Unmarshal(val, alert); err != nil {
		// Поврежденный кэш равносилен промаху
		return nil, nil
	}
	return alert, nil
}

// SetAlertCache сохраняет оповещение в Redis
func (r *AlertRepository) SetAlertCache(ctx context.Context, alert *models.Alert) error {
	key := fmt.Sprintf("alert:%s", alert.ID)
	val, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, alertCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set alert in cache: %w", err)
	}
	return nil
}

// InvalidateAlertCache удаляет оповещение из Redis кэша
func (r *AlertRepository) InvalidateAlertCache(ctx context.Context, id string) error {
	key := fmt.Sprintf("alert:%s", id)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate alert cache: %w", err)
	}
	return nil
}

func scanAlerts(rows pgx.Rows) ([]*models.Alert, error) {
	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert := &models.Alert{}
		err := rows.Scan(
			&alert.ID,
			&alert.Author,
			&alert.Title,
			&alert.Description,
			&alert.Category,
			&alert.Location.Latitude,
			&alert.Location.Longitude,
			&alert.ImageURL,
			&alert.CreatedAt,
			&alert.LikeCount,
			&alert.IsResolved,
			&alert.IsPending,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alert.Comments = []models.Comment{}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alerts iteration: %w", err)
	}
	return alerts, nil
}

// attachComments подгружает комментарии для набора оповещений одним запросом
// и раскладывает их по принадлежности в порядке создания
func (r *AlertRepository) attachComments(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(alerts))
	byID := make(map[string]*models.Alert, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
		byID[a.ID] = a
		if a.Comments == nil {
			a.Comments = []models.Comment{}
		}
	}

	query := `
		SELECT id, alert_id, author, text, created_at
		FROM comments
		WHERE alert_id = ANY($1)
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.AlertID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan comment row: %w", err)
		}
		if alert, ok := byID[c.AlertID]; ok {
			alert.Comments = append(alert.Comments, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error comments iteration: %w", err)
	}
	return nil
}
