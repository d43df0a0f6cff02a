package usecase

import (
	"math"
	"time"

	"github.com/trip-planner/internal/domain"
)

// WindowMatch - точка маршрута, выбранная для окна приёма пищи
type WindowMatch struct {
	Point domain.GeoPoint
	ETA   time.Time
}

// BuildCheckpoints разворачивает шаги маршрута в чекпоинты с накопленным временем
func BuildCheckpoints(route *domain.Route) []domain.Checkpoint {
	if route == nil {
		return nil
	}
	checkpoints := make([]domain.Checkpoint, 0, 64)
	cumulative := 0.0
	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			cumulative += step.DurationSeconds
			checkpoints = append(checkpoints, domain.Checkpoint{
				Point:             step.EndPoint,
				CumulativeSeconds: cumulative,
			})
		}
	}
	return checkpoints
}

// AnchorWindow привязывает окно HH:MM к дате опорного момента.
// Окно, заканчивающееся не позже начала, трактуется как переходящее через полночь.
func AnchorWindow(ref time.Time, w domain.TimeWindow) (time.Time, time.Time, error) {
	sh, sm, err := domain.ParseClock(w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := domain.ParseClock(w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), sh, sm, 0, 0, ref.Location())
	end := time.Date(ref.Year(), ref.Month(), ref.Day(), eh, em, 0, 0, ref.Location())
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// FindPointForWindow выбирает чекпоинт, ETA которого попадает в окно.
// Берётся первый подходящий чекпоинт; если ни один не попал, ближайший к середине окна.
func FindPointForWindow(checkpoints []domain.Checkpoint, departure time.Time, w domain.TimeWindow) (*WindowMatch, error) {
	if len(checkpoints) == 0 {
		return nil, nil
	}
	start, end, err := AnchorWindow(departure, w)
	if err != nil {
		return nil, err
	}
	for _, cp := range checkpoints {
		eta := departure.Add(time.Duration(cp.CumulativeSeconds * float64(time.Second)))
		if !eta.Before(start) && !eta.After(end) {
			return &WindowMatch{Point: cp.Point, ETA: eta}, nil
		}
	}

	midpoint := start.Add(end.Sub(start) / 2)
	best := checkpoints[0]
	bestETA := departure.Add(time.Duration(best.CumulativeSeconds * float64(time.Second)))
	bestDiff := math.Abs(bestETA.Sub(midpoint).Seconds())
	for _, cp := range checkpoints[1:] {
		eta := departure.Add(time.Duration(cp.CumulativeSeconds * float64(time.Second)))
		diff := math.Abs(eta.Sub(midpoint).Seconds())
		if diff < bestDiff {
			best = cp
			bestETA = eta
			bestDiff = diff
		}
	}
	return &WindowMatch{Point: best.Point, ETA: bestETA}, nil
}

// ETAWithinTolerance проверяет, что ETA попадает в окно, расширенное допуском.
// Окно привязывается к дате самого ETA.
func ETAWithinTolerance(eta time.Time, w domain.TimeWindow, tolerance time.Duration) bool {
	start, end, err := AnchorWindow(eta, w)
	if err != nil {
		return false
	}
	start = start.Add(-tolerance)
	end = end.Add(tolerance)
	return !eta.Before(start) && !eta.After(end)
}

// WindowOverlapsTrip проверяет, пересекается ли окно приёма пищи с интервалом поездки
func WindowOverlapsTrip(w domain.TimeWindow, departure, arrival time.Time) bool {
	start, end, err := AnchorWindow(departure, w)
	if err != nil {
		return false
	}
	return !end.Before(departure) && !start.After(arrival)
}
