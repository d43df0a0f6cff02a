package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	maxRetries int
	logger     *zap.Logger
}

// NewOSRMClient создает новый клиент для OSRM API
func NewOSRMClient(cfg *config.OSRMConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:    cfg.BaseURL,
		profile:    cfg.Profile,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Legs     []struct {
			Steps []struct {
				Duration float64 `json:"duration"`
				Maneuver struct {
					Location []float64 `json:"location"` // [lng, lat]
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type tableResponse struct {
	Code      string      `json:"code"`
	Durations [][]float64 `json:"durations"`
}

// Route возвращает маршрут origin -> stops... -> destination
func (c *client) Route(
	ctx context.Context,
	origin domain.GeoPoint,
	destination domain.GeoPoint,
	stops []domain.GeoPoint,
) (*domain.Route, error) {
	points := make([]domain.GeoPoint, 0, len(stops)+2)
	points = append(points, origin)
	points = append(points, stops...)
	points = append(points, destination)

	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=false&steps=true",
		c.baseURL, c.profile, coordsString(points))

	c.logger.Debug("Calling OSRM Route API",
		zap.Int("points_count", len(points)))

	body, err := c.getWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp routeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode route response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		c.logger.Error("OSRM returned non-OK route code", zap.String("code", resp.Code))
		return nil, fmt.Errorf("osrm route returned code: %s", resp.Code)
	}

	r := resp.Routes[0]
	route := &domain.Route{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Legs:            make([]domain.RouteLeg, 0, len(r.Legs)),
	}
	for _, leg := range r.Legs {
		dl := domain.RouteLeg{Steps: make([]domain.RouteStep, 0, len(leg.Steps))}
		for _, step := range leg.Steps {
			if len(step.Maneuver.Location) < 2 {
				continue
			}
			dl.Steps = append(dl.Steps, domain.RouteStep{
				EndPoint: domain.GeoPoint{
					Lat: step.Maneuver.Location[1],
					Lng: step.Maneuver.Location[0],
				},
				DurationSeconds: step.Duration,
			})
		}
		route.Legs = append(route.Legs, dl)
	}

	c.logger.Debug("OSRM Route API call successful",
		zap.Float64("duration_s", route.DurationSeconds),
		zap.Float64("distance_m", route.DistanceMeters))

	return route, nil
}

// DurationMatrix возвращает NxN матрицу времени в пути между точками
func (c *client) DurationMatrix(ctx context.Context, points []domain.GeoPoint) ([][]float64, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("points cannot be empty")
	}

	url := fmt.Sprintf("%s/table/v1/%s/%s?annotations=duration",
		c.baseURL, c.profile, coordsString(points))

	body, err := c.getWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp tableResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode table response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode table response: %w", err)
	}

	if resp.Code != "Ok" {
		c.logger.Error("OSRM returned non-OK table code", zap.String("code", resp.Code))
		return nil, fmt.Errorf("osrm table returned code: %s", resp.Code)
	}
	if len(resp.Durations) == 0 {
		return nil, fmt.Errorf("osrm table returned no durations")
	}

	return resp.Durations, nil
}

// getWithRetry выполняет GET с повторами при временных сбоях
// (сетевые ошибки, 429, 5xx) с нарастающим backoff
func (c *client) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, retryable, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable || attempt == c.maxRetries+1 {
			return nil, lastErr
		}

		c.logger.Warn("OSRM request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (c *client) get(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("osrm API error: status %d, body: %s", resp.StatusCode, string(b))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}
	return b, false, nil
}

// coordsString строит строку "lng,lat;lng,lat;..." для OSRM URL
func coordsString(points []domain.GeoPoint) string {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%f,%f", p.Lng, p.Lat)
	}
	return strings.Join(coords, ";")
}
