package domain

import "time"

// Методы оценки объезда
const (
	DetourMethodMatrix    = "matrix"
	DetourMethodHeuristic = "heuristic"
)

// Redis stream для архивации построенных планов
const StreamTripPlanned = "trips:planned"

// DetourEstimate - дополнительное время (минуты) на посещение кандидата
type DetourEstimate struct {
	Minutes int    `json:"minutes"`
	Method  string `json:"method"`
}

// ScoredPlace - кандидат с объездом, оценкой и причинами соответствия
type ScoredPlace struct {
	Place         Place     `json:"place"`
	DetourMinutes int       `json:"detour_minutes"`
	ETA           time.Time `json:"eta"`
	Score         float64   `json:"score"`
	MatchReasons  []string  `json:"match_reasons"`
}

// TripPlan - итоговый план поездки
type TripPlan struct {
	TripID              string                   `json:"trip_id"`
	Departure           time.Time                `json:"departure"`
	DepartureWindow     [2]time.Time             `json:"departure_window"`
	RouteSummary        RouteSummary             `json:"route_summary"`
	MealSuggestions     map[string][]ScoredPlace `json:"meal_suggestions"`
	PersonalizationUsed bool                     `json:"personalization_used"`
	CreatedAt           time.Time                `json:"created_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
