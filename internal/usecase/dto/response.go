package dto

import (
	"fmt"
	"time"

	"github.com/trip-planner/internal/domain"
)

// PlaceSuggestionDTO - одно предложение заведения для приёма пищи
type PlaceSuggestionDTO struct {
	PlaceID       string            `json:"place_id"`
	Name          string            `json:"name"`
	Location      Point             `json:"location"`
	DetourMinutes int               `json:"detour_minutes"`
	ETAAtPlace    time.Time         `json:"eta_at_place"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Score         float64           `json:"score"`
	MatchReasons  []string          `json:"match_reasons,omitempty"`
}

// RouteSummaryDTO - сводка базового маршрута
type RouteSummaryDTO struct {
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
	Stops       []string `json:"stops,omitempty"`
}

// PlanTripResponse - итоговый план поездки
type PlanTripResponse struct {
	TripID                     string                          `json:"trip_id"`
	RecommendedDeparture       time.Time                       `json:"recommended_departure"`
	RecommendedDepartureWindow [2]time.Time                    `json:"recommended_departure_window"`
	RouteSummary               RouteSummaryDTO                 `json:"route_summary"`
	MealSuggestions            map[string][]PlaceSuggestionDTO `json:"meal_suggestions"`
	PersonalizationUsed        bool                            `json:"personalization_used"`
}

// PreferencesResponse - профиль персонализации пользователя
type PreferencesResponse struct {
	UserID         string    `json:"user_id"`
	FoodPreference string    `json:"food_preference"`
	Budget         string    `json:"budget"`
	Pace           string    `json:"pace"`
	Mood           string    `json:"mood"`
	Activities     []string  `json:"activities,omitempty"`
	Accessibility  string    `json:"accessibility"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ConvertPlan преобразует доменный план в ответ API
func ConvertPlan(plan *domain.TripPlan) *PlanTripResponse {
	resp := &PlanTripResponse{
		TripID:                     plan.TripID,
		RecommendedDeparture:       plan.Departure,
		RecommendedDepartureWindow: plan.DepartureWindow,
		RouteSummary: RouteSummaryDTO{
			DistanceKm:  plan.RouteSummary.DistanceKm,
			DurationMin: plan.RouteSummary.DurationMin,
			Stops:       plan.RouteSummary.Stops,
		},
		MealSuggestions:     make(map[string][]PlaceSuggestionDTO, len(plan.MealSuggestions)),
		PersonalizationUsed: plan.PersonalizationUsed,
	}
	for meal, places := range plan.MealSuggestions {
		suggestions := make([]PlaceSuggestionDTO, 0, len(places))
		for _, sp := range places {
			suggestions = append(suggestions, PlaceSuggestionDTO{
				PlaceID:       sp.Place.ID,
				Name:          sp.Place.Name,
				Location:      Point{Lat: sp.Place.Location.Lat, Lng: sp.Place.Location.Lng},
				DetourMinutes: sp.DetourMinutes,
				ETAAtPlace:    sp.ETA,
				Attributes:    sp.Place.Attributes,
				Score:         sp.Score,
				MatchReasons:  sp.MatchReasons,
			})
		}
		resp.MealSuggestions[meal] = suggestions
	}
	return resp
}

// ConvertProfile преобразует доменный профиль в ответ API
func ConvertProfile(p *domain.PersonalizationProfile) *PreferencesResponse {
	return &PreferencesResponse{
		UserID:         p.UserID,
		FoodPreference: p.FoodPreference,
		Budget:         p.Budget,
		Pace:           p.Pace,
		Mood:           p.Mood,
		Activities:     p.Activities,
		Accessibility:  p.Accessibility,
		UpdatedAt:      p.UpdatedAt,
	}
}

// FormatStop форматирует промежуточную остановку для сводки маршрута
func FormatStop(p domain.GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}
