package geo

import (
	"math"

	"github.com/shenikar/civic_alert_system/internal/models"
)

// earthRadiusKm - радиус сферической модели Земли в километрах
const earthRadiusKm = 6371

// DistanceKm вычисляет расстояние по большому кругу (формула гаверсинуса)
// между двумя координатами в километрах. Функция симметрична и возвращает 0
// для совпадающих точек.
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// PointInPolygon проверяет принадлежность точки многоугольнику методом
// трассировки луча. Учитывается только внешнее кольцо: многоугольники с
// дырами не поддерживаются. Поведение для точек строго на границе не
// определено (известная неоднозначность метода).
func PointInPolygon(point models.Coordinate, polygon []models.Coordinate) bool {
	if len(polygon) < 3 {
		return false
	}

	x := point.Longitude
	y := point.Latitude

	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude

		intersect := (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi
		if intersect {
			inside = !inside
		}
	}

	return inside
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
