package models

// Ward - административный округ со статической геометрией границы.
// Polygon хранит только внешнее кольцо (дыры не поддерживаются).
type Ward struct {
	ID      string       `json:"id"`
	Polygon []Coordinate `json:"polygon"`
}

// Councilor - представитель округа, справочные данные только для чтения
type Councilor struct {
	WardID      string `json:"ward_id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"image_url,omitempty"`
}
