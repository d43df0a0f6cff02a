package domain

// RouteStep - шаг маршрута: конечная точка и длительность в секундах
type RouteStep struct {
	EndPoint        GeoPoint `json:"end_point"`
	DurationSeconds float64  `json:"duration_seconds"`
}

// RouteLeg - сегмент маршрута между двумя промежуточными точками
type RouteLeg struct {
	Steps []RouteStep `json:"steps"`
}

// Route - результат маршрутизации от внешнего роутера
type Route struct {
	DistanceMeters  float64    `json:"distance_meters"`
	DurationSeconds float64    `json:"duration_seconds"`
	Legs            []RouteLeg `json:"legs"`
}

// RouteSummary - сводка по базовому маршруту для ответа клиенту
type RouteSummary struct {
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
	Stops       []string `json:"stops"`
}
