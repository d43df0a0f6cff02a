package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	apiURL     string
	logger     *zap.Logger
}

// NewOverpassClient создает новый клиент для Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		apiURL: cfg.URL,
		logger: logger,
	}
}

type overpassResponse struct {
	Elements []struct {
		ID     int64             `json:"id"`
		Lat    float64           `json:"lat"`
		Lon    float64           `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center,omitempty"`
		Tags map[string]string `json:"tags,omitempty"`
	} `json:"elements"`
}

// Search возвращает заведения категории category в радиусе radiusMeters вокруг точки.
// Элементы без тегов отбрасываются; для way/relation берется центр.
func (c *client) Search(
	ctx context.Context,
	point domain.GeoPoint,
	radiusMeters int,
	category string,
) ([]domain.Place, error) {
	query := buildAroundQuery(point, radiusMeters, category)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("Calling Overpass API",
		zap.Float64("lat", point.Lat),
		zap.Float64("lng", point.Lng),
		zap.Int("radius_m", radiusMeters),
		zap.String("category", category))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("overpass API error: status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	places := make([]domain.Place, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		if len(el.Tags) == 0 {
			continue
		}

		lat, lng := el.Lat, el.Lon
		if lat == 0 && lng == 0 && el.Center != nil {
			lat, lng = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lng == 0 {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = "Unknown"
		}

		places = append(places, domain.Place{
			ID:         strconv.FormatInt(el.ID, 10),
			Name:       name,
			Location:   domain.GeoPoint{Lat: lat, Lng: lng},
			Attributes: el.Tags,
		})
	}

	c.logger.Debug("Overpass API call successful",
		zap.Int("places_count", len(places)))

	return places, nil
}

func buildAroundQuery(point domain.GeoPoint, radiusMeters int, category string) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"=%q](around:%d,%f,%f);
  way["amenity"=%q](around:%d,%f,%f);
  relation["amenity"=%q](around:%d,%f,%f);
);
out center;`,
		category, radiusMeters, point.Lat, point.Lng,
		category, radiusMeters, point.Lat, point.Lng,
		category, radiusMeters, point.Lat, point.Lng,
	)
}
