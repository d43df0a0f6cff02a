package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// GeoPoint - географическая точка (широта/долгота в градусах)
type GeoPoint struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Checkpoint - точка маршрута с накопленным временем от старта поездки
type Checkpoint struct {
	Point             GeoPoint `json:"point"`
	CumulativeSeconds float64  `json:"cumulative_seconds"`
}

// TimeWindow - интервал времени суток в формате HH:MM.
// End <= Start означает переход через полночь.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseClock разбирает строку "HH:MM" в часы и минуты
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

// Validate проверяет, что обе границы окна разбираются как HH:MM
func (w TimeWindow) Validate() error {
	if _, _, err := ParseClock(w.Start); err != nil {
		return err
	}
	if _, _, err := ParseClock(w.End); err != nil {
		return err
	}
	return nil
}
