package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/usecase"
)

func place(name string, attrs map[string]string) domain.Place {
	return domain.Place{
		ID:         "p1",
		Name:       name,
		Location:   domain.GeoPoint{Lat: 27.0, Lng: 76.0},
		Attributes: attrs,
	}
}

func TestBasicPolicy(t *testing.T) {
	policy := usecase.PolicyFor(nil, false, 15)

	t.Run("uses rating when present", func(t *testing.T) {
		rated, _ := policy.Score(place("Highway Diner", map[string]string{"rating": "4.5"}), 0)
		unrated, _ := policy.Score(place("Highway Diner", nil), 0)
		assert.Greater(t, rated, unrated)
	})

	t.Run("defaults missing rating to neutral", func(t *testing.T) {
		score, reasons := policy.Score(place("No Tags Cafe", nil), 0)
		assert.InDelta(t, 3.0, score, 0.01)
		assert.Empty(t, reasons)
	})

	t.Run("detour penalty scales with allowed maximum", func(t *testing.T) {
		near, _ := policy.Score(place("Diner", nil), 3)
		far, _ := policy.Score(place("Diner", nil), 12)
		assert.Greater(t, near, far)
	})

	t.Run("score never drops below floor", func(t *testing.T) {
		score, _ := policy.Score(place("Diner", map[string]string{"rating": "1.0"}), 15)
		assert.GreaterOrEqual(t, score, 0.1)
	})

	t.Run("attribute richness breaks ties", func(t *testing.T) {
		rich, _ := policy.Score(place("Diner", map[string]string{
			"cuisine": "indian", "opening_hours": "24/7", "phone": "x",
		}), 5)
		poor, _ := policy.Score(place("Diner", nil), 5)
		assert.Greater(t, rich, poor)
	})
}

func TestBasicPolicy_Vegetarian(t *testing.T) {
	policy := usecase.PolicyFor(nil, true, 15)

	t.Run("cuisine cue adds bonus with reason", func(t *testing.T) {
		score, reasons := policy.Score(place("Annapurna", map[string]string{"cuisine": "vegetarian"}), 0)
		plain, _ := policy.Score(place("Annapurna", nil), 0)
		assert.Greater(t, score, plain)
		assert.Contains(t, reasons, "Vegetarian-friendly cuisine")
	})

	t.Run("name cue adds smaller bonus", func(t *testing.T) {
		named, reasons := policy.Score(place("Pure Veg Palace", nil), 0)
		plain, _ := policy.Score(place("Palace", nil), 0)
		assert.Greater(t, named, plain)
		assert.Contains(t, reasons, "Vegetarian cues in name")
	})

	t.Run("cues ignored without vegetarian request", func(t *testing.T) {
		neutral := usecase.PolicyFor(nil, false, 15)
		score, reasons := neutral.Score(place("Pure Veg Palace", nil), 0)
		assert.InDelta(t, 3.0, score, 0.01)
		assert.Empty(t, reasons)
	})
}

func TestPersonalizedPolicy(t *testing.T) {
	profile := &domain.PersonalizationProfile{
		UserID:         "u1",
		FoodPreference: domain.FoodPrefVegetarian,
		Budget:         domain.BudgetLow,
		Pace:           domain.PaceBalanced,
		Mood:           "relax",
		Activities:     []string{"street food"},
		Accessibility:  domain.AccessibilityWheelchair,
	}

	t.Run("food preference match raises score with reason", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		match, reasons := policy.Score(place("Shudh Vegetarian Bhojanalay", map[string]string{"cuisine": "vegetarian"}), 5)
		neutral, _ := policy.Score(place("Plain Diner", nil), 5)
		assert.Greater(t, match, neutral)
		assert.Contains(t, reasons, "Matches your vegetarian preference")
	})

	t.Run("conflicting cue lowers score", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		conflict, reasons := policy.Score(place("Seafood Grill", map[string]string{"cuisine": "seafood"}), 5)
		neutral, _ := policy.Score(place("Plain Diner", nil), 5)
		assert.Less(t, conflict, neutral)
		assert.Contains(t, reasons, "May not suit your vegetarian preference")
	})

	t.Run("budget alignment rewards cheap places for budget travellers", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		cheap, reasons := policy.Score(place("Dhaba", map[string]string{"price_tier": "cheap"}), 5)
		pricey, _ := policy.Score(place("Dhaba", map[string]string{"price_tier": "expensive"}), 5)
		assert.Greater(t, cheap, pricey)
		assert.Contains(t, reasons, "Fits your budget budget")
	})

	t.Run("mood and activity cues add bonuses", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		cafe, reasons := policy.Score(place("Roadside Cafe", nil), 5)
		plain, _ := policy.Score(place("Roadside", nil), 5)
		assert.Greater(t, cafe, plain)
		assert.Contains(t, reasons, "Good match for a relax mood")

		street, reasons := policy.Score(place("Street Snack Corner", nil), 5)
		assert.Greater(t, street, plain)
		assert.Contains(t, reasons, "Matches your interest in street food")
	})

	t.Run("accessibility tag adds bonus for accessibility profiles", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		accessible, reasons := policy.Score(place("Diner", map[string]string{"wheelchair": "yes"}), 5)
		inaccessible, _ := policy.Score(place("Diner", nil), 5)
		assert.Greater(t, accessible, inaccessible)
		assert.Contains(t, reasons, "Wheelchair accessible")
	})

	t.Run("relaxed pace softens detour penalty", func(t *testing.T) {
		relaxed := *profile
		relaxed.Pace = domain.PaceRelaxed
		fast := *profile
		fast.Pace = domain.PaceFast

		relaxedScore, _ := usecase.PolicyFor(&relaxed, false, 15).Score(place("Diner", nil), 10)
		fastScore, _ := usecase.PolicyFor(&fast, false, 15).Score(place("Diner", nil), 10)
		assert.Greater(t, relaxedScore, fastScore)
	})

	t.Run("score is monotone non-increasing in detour", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		prev, _ := policy.Score(place("Diner", map[string]string{"rating": "4.2"}), 0)
		for detour := 1; detour <= 15; detour++ {
			score, _ := policy.Score(place("Diner", map[string]string{"rating": "4.2"}), detour)
			assert.LessOrEqual(t, score, prev, "detour %d", detour)
			prev = score
		}
	})

	t.Run("high rating noted in reasons", func(t *testing.T) {
		policy := usecase.PolicyFor(profile, false, 15)
		_, reasons := policy.Score(place("Plain Diner", map[string]string{"rating": "4.6"}), 0)
		assert.Contains(t, reasons, "Highly rated")
	})
}
