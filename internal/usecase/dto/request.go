package dto

// Point - географическая точка запроса
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// MealWindowInput - желаемое окно приёма пищи в локальном времени HH:MM
type MealWindowInput struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// PlanTripRequest - запрос на планирование поездки с остановками на еду
type PlanTripRequest struct {
	Source              Point                      `json:"source"`
	Destination         Point                      `json:"destination"`
	Stops               []Point                    `json:"stops,omitempty" validate:"omitempty,max=10,dive"`
	MealWindows         map[string]MealWindowInput `json:"meal_windows" validate:"required,min=1,dive"`
	DesiredArrival      string                     `json:"desired_arrival" validate:"required"`
	VegPref             string                     `json:"veg_pref,omitempty" validate:"omitempty,oneof=any veg"`
	MaxDetourMinutes    int                        `json:"max_detour_minutes,omitempty" validate:"omitempty,min=1,max=120"`
	MealDurationMinutes int                        `json:"meal_duration_min,omitempty" validate:"omitempty,min=5,max=180"`
	UserID              string                     `json:"user_id,omitempty"`
}

// UpsertPreferencesRequest - запрос на сохранение профиля персонализации
type UpsertPreferencesRequest struct {
	FoodPreference string   `json:"food_preference" validate:"omitempty,oneof=any vegetarian vegan jain"`
	Budget         string   `json:"budget" validate:"omitempty,oneof=budget mid-range luxury"`
	Pace           string   `json:"pace" validate:"omitempty,oneof=relaxed balanced fast"`
	Mood           string   `json:"mood" validate:"omitempty,oneof=relax party adventure spiritual"`
	Activities     []string `json:"activities,omitempty" validate:"omitempty,max=10"`
	Accessibility  string   `json:"accessibility" validate:"omitempty,oneof=none wheelchair-friendly elderly-friendly"`
}
