package usecase

import (
	"fmt"
	"strings"

	"github.com/trip-planner/internal/domain"
)

// ScoringPolicy ранжирует заведения с учётом крюка до них
type ScoringPolicy interface {
	Score(place domain.Place, detourMinutes int) (float64, []string)
}

const (
	defaultRating = 3.0
	scoreFloor    = 0.1

	detourPenaltyWeight = 5.0
	personalWeight      = 0.7
	baseQualityWeight   = 0.3
)

var vegCuisineCues = []string{"vegetarian", "vegan", "veg", "pure_veg", "south_indian", "north_indian"}

var vegNameCues = []string{"veg", "vegetarian", "pure veg", "shakahari"}

var foodCues = map[string][]string{
	domain.FoodPrefVegetarian: vegCuisineCues,
	domain.FoodPrefVegan:      {"vegan", "plant_based", "salad", "juice"},
	domain.FoodPrefJain:       {"jain", "pure_veg", "sattvic"},
}

var foodConflicts = map[string][]string{
	domain.FoodPrefVegetarian: {"steak", "bbq", "barbecue", "seafood", "fish", "kebab", "chicken", "mutton"},
	domain.FoodPrefVegan:      {"steak", "bbq", "barbecue", "seafood", "fish", "kebab", "chicken", "mutton", "cheese", "dairy"},
	domain.FoodPrefJain:       {"steak", "bbq", "barbecue", "seafood", "fish", "kebab", "chicken", "mutton", "garlic", "onion"},
}

var budgetAlignment = map[string]map[string]float64{
	domain.BudgetLow:  {"cheap": 1.0, "moderate": 0.2, "expensive": -1.0},
	domain.BudgetMid:  {"cheap": 0.3, "moderate": 1.0, "expensive": 0.0},
	domain.BudgetHigh: {"cheap": -0.5, "moderate": 0.3, "expensive": 1.0},
}

var moodCues = map[string][]string{
	"relax":     {"cafe", "coffee", "tea", "garden", "bakery"},
	"party":     {"bar", "pub", "lounge", "brewery"},
	"adventure": {"dhaba", "street", "local", "regional"},
	"spiritual": {"pure_veg", "sattvic", "temple", "ashram"},
}

var activityCues = map[string][]string{
	"street food": {"street", "snack", "chaat", "fast_food"},
	"nightlife":   {"bar", "pub", "club", "lounge"},
	"heritage":    {"heritage", "traditional", "royal", "haveli"},
	"wellness":    {"organic", "healthy", "juice", "salad"},
}

var paceFactors = map[string]float64{
	domain.PaceRelaxed:  0.6,
	domain.PaceBalanced: 1.0,
	domain.PaceFast:     1.4,
}

// PolicyFor выбирает политику оценки: персональную при наличии профиля, иначе базовую
func PolicyFor(profile *domain.PersonalizationProfile, vegetarian bool, maxDetourMinutes int) ScoringPolicy {
	if profile != nil {
		return &personalizedPolicy{profile: *profile, maxDetourMinutes: maxDetourMinutes}
	}
	return &basicPolicy{vegetarian: vegetarian, maxDetourMinutes: maxDetourMinutes}
}

// basicPolicy - оценка без профиля: рейтинг, вегетарианские сигналы, штраф за крюк
type basicPolicy struct {
	vegetarian       bool
	maxDetourMinutes int
}

func (p *basicPolicy) Score(place domain.Place, detourMinutes int) (float64, []string) {
	var reasons []string

	base := defaultRating
	if rating, ok := place.Rating(); ok {
		base = rating
		reasons = append(reasons, fmt.Sprintf("Rated %.1f", rating))
	}

	bonus := 0.0
	if p.vegetarian {
		cuisine := strings.ToLower(place.Cuisine())
		if containsAny(cuisine, vegCuisineCues) {
			bonus += 2.0
			reasons = append(reasons, "Vegetarian-friendly cuisine")
		}
		if containsAny(strings.ToLower(place.Name), vegNameCues) {
			bonus += 1.5
			reasons = append(reasons, "Vegetarian cues in name")
		}
	}

	score := base + bonus - detourPenalty(detourMinutes, p.maxDetourMinutes) + richnessBonus(place)
	return clampScore(score), reasons
}

// personalizedPolicy - оценка по сохранённому профилю пользователя
type personalizedPolicy struct {
	profile          domain.PersonalizationProfile
	maxDetourMinutes int
}

func (p *personalizedPolicy) Score(place domain.Place, detourMinutes int) (float64, []string) {
	var reasons []string

	base := defaultRating
	rating, hasRating := place.Rating()
	if hasRating {
		base = rating
	}

	haystack := strings.ToLower(place.Cuisine() + " " + place.Name)
	personal := 0.0

	pref := strings.ToLower(p.profile.FoodPreference)
	if pref != "" && pref != domain.FoodPrefAny {
		switch {
		case containsAny(haystack, foodCues[pref]):
			personal += 2.0
			reasons = append(reasons, fmt.Sprintf("Matches your %s preference", pref))
		case containsAny(haystack, foodConflicts[pref]):
			personal -= 2.0
			reasons = append(reasons, fmt.Sprintf("May not suit your %s preference", pref))
		}
	}

	if tier := priceTier(place); tier != "" {
		if weight, ok := budgetAlignment[p.profile.Budget][tier]; ok && weight != 0 {
			personal += weight
			if weight > 0 {
				reasons = append(reasons, fmt.Sprintf("Fits your %s budget", p.profile.Budget))
			}
		}
	}

	if cues, ok := moodCues[p.profile.Mood]; ok && containsAny(haystack, cues) {
		personal += 1.0
		reasons = append(reasons, fmt.Sprintf("Good match for a %s mood", p.profile.Mood))
	}

	activityBonus := 0.0
	for _, activity := range p.profile.Activities {
		if cues, ok := activityCues[strings.ToLower(activity)]; ok && containsAny(haystack, cues) {
			activityBonus += 0.5
			reasons = append(reasons, fmt.Sprintf("Matches your interest in %s", strings.ToLower(activity)))
		}
	}
	if activityBonus > 1.5 {
		activityBonus = 1.5
	}
	personal += activityBonus

	if hasRating {
		personal += (rating - defaultRating) * 0.5
		if rating >= 4.0 {
			reasons = append(reasons, "Highly rated")
		}
	}

	if p.profile.Accessibility != "" && p.profile.Accessibility != domain.AccessibilityNone {
		if place.Attr("wheelchair") == "yes" {
			personal += 1.0
			reasons = append(reasons, "Wheelchair accessible")
		}
	}

	penalty := detourPenalty(detourMinutes, p.maxDetourMinutes) * paceFactor(p.profile.Pace)
	score := personalWeight*personal + baseQualityWeight*base + richnessBonus(place) - penalty
	return clampScore(score), reasons
}

// detourPenalty растёт линейно с крюком относительно допустимого максимума
func detourPenalty(detourMinutes, maxDetourMinutes int) float64 {
	if maxDetourMinutes < 1 {
		maxDetourMinutes = 1
	}
	return float64(detourMinutes) / float64(maxDetourMinutes) * detourPenaltyWeight
}

// richnessBonus слегка поднимает заведения с более полными атрибутами
func richnessBonus(place domain.Place) float64 {
	count := place.AttributeCount()
	if count > 3 {
		count = 3
	}
	return float64(count) * 0.05
}

func paceFactor(pace string) float64 {
	if factor, ok := paceFactors[pace]; ok {
		return factor
	}
	return 1.0
}

// priceTier нормализует ценовые теги к трём уровням
func priceTier(place domain.Place) string {
	raw := strings.ToLower(place.Attr("price_tier"))
	if raw == "" {
		raw = strings.ToLower(place.Attr("price"))
	}
	switch raw {
	case "cheap", "$", "budget":
		return "cheap"
	case "moderate", "$$", "mid-range":
		return "moderate"
	case "expensive", "$$$", "$$$$", "luxury":
		return "expensive"
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func clampScore(score float64) float64 {
	if score < scoreFloor {
		return scoreFloor
	}
	return score
}
