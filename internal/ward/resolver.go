package ward

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shenikar/civic_alert_system/internal/geo"
	"github.com/shenikar/civic_alert_system/internal/models"
)

// geoJSONFeatureCollection - минимальная структура FeatureCollection для загрузки округов
type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	} `json:"geometry"`
}

// Resolver сопоставляет координату с административным округом и его представителем.
// Справочные данные загружаются при старте и далее только читаются.
type Resolver struct {
	wards      []models.Ward
	councilors []models.Councilor
}

// NewResolver создает резолвер над статическими наборами округов и представителей
func NewResolver(wards []models.Ward, councilors []models.Councilor) *Resolver {
	return &Resolver{
		wards:      wards,
		councilors: councilors,
	}
}

// NewResolverFromFiles загружает округа из GeoJSON-файла и представителей из JSON-файла
func NewResolverFromFiles(wardsPath, councilorsPath string) (*Resolver, error) {
	wards, err := LoadWardsGeoJSON(wardsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load wards: %w", err)
	}

	councilors, err := LoadCouncilors(councilorsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load councilors: %w", err)
	}

	return NewResolver(wards, councilors), nil
}

// LoadWardsGeoJSON разбирает FeatureCollection с полигонами округов.
// Берется только внешнее кольцо каждого полигона, дыры игнорируются.
func LoadWardsGeoJSON(path string) ([]models.Ward, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wards geojson: %w", err)
	}

	var fc geoJSONFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse wards geojson: %w", err)
	}

	wards := make([]models.Ward, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry.Type != "Polygon" || len(f.Geometry.Coordinates) == 0 {
			continue
		}

		id := f.Properties["WARD_NO"]
		if id == "" {
			id = f.Properties["name"]
		}

		ring := f.Geometry.Coordinates[0]
		polygon := make([]models.Coordinate, 0, len(ring))
		for _, pt := range ring {
			// GeoJSON хранит координаты как [lng, lat]
			polygon = append(polygon, models.Coordinate{Latitude: pt[1], Longitude: pt[0]})
		}

		wards = append(wards, models.Ward{ID: id, Polygon: polygon})
	}

	return wards, nil
}

// LoadCouncilors загружает справочник представителей из JSON-файла
func LoadCouncilors(path string) ([]models.Councilor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read councilors file: %w", err)
	}

	var councilors []models.Councilor
	if err := json.Unmarshal(data, &councilors); err != nil {
		return nil, fmt.Errorf("failed to parse councilors file: %w", err)
	}
	return councilors, nil
}

// ResolveWard возвращает первый по порядку округ, полигон которого содержит точку,
// или nil, если точка не попадает ни в один округ. При пересечении округов
// побеждает более ранний в наборе.
func (r *Resolver) ResolveWard(point models.Coordinate) *models.Ward {
	for i := range r.wards {
		if geo.PointInPolygon(point, r.wards[i].Polygon) {
			return &r.wards[i]
		}
	}
	return nil
}

// FindCouncilor возвращает представителя округа по его идентификатору или nil
func (r *Resolver) FindCouncilor(wardID string) *models.Councilor {
	for i := range r.councilors {
		if r.councilors[i].WardID == wardID {
			return &r.councilors[i]
		}
	}
	return nil
}

// Wards возвращает загруженный набор округов
func (r *Resolver) Wards() []models.Ward {
	return r.wards
}
