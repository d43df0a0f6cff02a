package domain

import "time"

// Значения полей профиля персонализации
const (
	FoodPrefAny        = "any"
	FoodPrefVegetarian = "vegetarian"
	FoodPrefVegan      = "vegan"
	FoodPrefJain       = "jain"

	BudgetLow  = "budget"
	BudgetMid  = "mid-range"
	BudgetHigh = "luxury"

	PaceRelaxed  = "relaxed"
	PaceBalanced = "balanced"
	PaceFast     = "fast"

	AccessibilityNone       = "none"
	AccessibilityWheelchair = "wheelchair-friendly"
	AccessibilityElderly    = "elderly-friendly"
)

// PersonalizationProfile - пользовательские предпочтения для оценки кандидатов
type PersonalizationProfile struct {
	UserID         string    `json:"user_id" db:"user_id"`
	FoodPreference string    `json:"food_preference" db:"food_preference"`
	Budget         string    `json:"budget" db:"budget"`
	Pace           string    `json:"pace" db:"pace"`
	Mood           string    `json:"mood" db:"mood"`
	Activities     []string  `json:"activities" db:"-"`
	Accessibility  string    `json:"accessibility" db:"accessibility"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
