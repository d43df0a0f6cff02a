package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/utils"
	"github.com/trip-planner/internal/usecase/dto"
)

// TripUseCase - use case планирования поездок с остановками на еду
type TripUseCase struct {
	routingRepo    repository.RoutingRepository
	placesRepo     repository.PlacesRepository
	preferenceRepo repository.PreferenceRepository
	tripRepo       repository.TripRepository
	streamRepo     repository.StreamRepository
	detour         *DetourEstimator
	logger         *zap.Logger
	cfg            config.PlannerConfig
}

// NewTripUseCase - создание нового TripUseCase
func NewTripUseCase(
	routingRepo repository.RoutingRepository,
	placesRepo repository.PlacesRepository,
	preferenceRepo repository.PreferenceRepository,
	tripRepo repository.TripRepository,
	streamRepo repository.StreamRepository,
	detour *DetourEstimator,
	logger *zap.Logger,
	cfg config.PlannerConfig,
) *TripUseCase {
	return &TripUseCase{
		routingRepo:    routingRepo,
		placesRepo:     placesRepo,
		preferenceRepo: preferenceRepo,
		tripRepo:       tripRepo,
		streamRepo:     streamRepo,
		detour:         detour,
		logger:         logger,
		cfg:            cfg,
	}
}

// PlanTrip строит план поездки: время выезда, чекпоинты для каждого окна еды,
// кандидатов рядом с ними и итоговый выезд с учётом крюков до лучших мест
func (uc *TripUseCase) PlanTrip(ctx context.Context, req dto.PlanTripRequest) (*dto.PlanTripResponse, error) {
	// Валидация входа
	desiredArrival, err := time.Parse(time.RFC3339, req.DesiredArrival)
	if err != nil {
		return nil, errors.ErrInvalidArrivalTime.WithDetails(map[string]interface{}{
			"desired_arrival": req.DesiredArrival,
		})
	}
	if !utils.ValidateCoordinates(req.Source.Lat, req.Source.Lng) ||
		!utils.ValidateCoordinates(req.Destination.Lat, req.Destination.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	for _, stop := range req.Stops {
		if !utils.ValidateCoordinates(stop.Lat, stop.Lng) {
			return nil, errors.ErrInvalidCoordinates
		}
	}
	mealWindows := make(map[string]domain.TimeWindow, len(req.MealWindows))
	for meal, w := range req.MealWindows {
		window := domain.TimeWindow{Start: w.Start, End: w.End}
		if err := window.Validate(); err != nil {
			return nil, errors.ErrInvalidMealWindow.WithDetails(map[string]interface{}{
				"meal":  meal,
				"error": err.Error(),
			})
		}
		mealWindows[meal] = window
	}

	maxDetour := req.MaxDetourMinutes
	if maxDetour <= 0 {
		maxDetour = uc.cfg.DefaultMaxDetourMin
	}
	mealDuration := req.MealDurationMinutes
	if mealDuration <= 0 {
		mealDuration = uc.cfg.DefaultMealDurationMin
	}

	// Профиль персонализации: его отсутствие или недоступность не блокирует план
	var profile *domain.PersonalizationProfile
	if req.UserID != "" && uc.preferenceRepo != nil {
		profile, err = uc.preferenceRepo.GetByUserID(ctx, req.UserID)
		if err != nil {
			uc.logger.Warn("Failed to load personalization profile",
				zap.String("user_id", req.UserID),
				zap.Error(err))
			profile = nil
		}
	}

	// Базовый маршрут: без него планировать нечего
	source := domain.GeoPoint{Lat: req.Source.Lat, Lng: req.Source.Lng}
	destination := domain.GeoPoint{Lat: req.Destination.Lat, Lng: req.Destination.Lng}
	stops := make([]domain.GeoPoint, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, domain.GeoPoint{Lat: s.Lat, Lng: s.Lng})
	}
	route, err := uc.routingRepo.Route(ctx, source, destination, stops)
	if err != nil {
		uc.logger.Error("Baseline route request failed", zap.Error(err))
		return nil, errors.ErrRoutingFailed.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Первый проход: выезд назад от желаемого прибытия
	totalMealSeconds := float64(len(mealWindows)*mealDuration) * 60
	travelSeconds := route.DurationSeconds + totalMealSeconds
	departure := desiredArrival.Add(-time.Duration(travelSeconds * float64(time.Second)))
	checkpoints := BuildCheckpoints(route)

	// Подбор мест для каждого окна; окна вне интервала поездки пропускаются
	suggestions := uc.resolveMeals(ctx, mealWindows, checkpoints, departure, desiredArrival,
		source, destination, profile, req.VegPref == "veg", maxDetour)

	// Второй проход: сдвиг выезда на крюки до лучших кандидатов
	extraSeconds := 0.0
	for _, places := range suggestions {
		if len(places) > 0 {
			extraSeconds += float64(places[0].DetourMinutes) * 60
		}
	}
	finalDeparture := desiredArrival.Add(-time.Duration((travelSeconds + extraSeconds) * float64(time.Second)))
	margin := time.Duration(uc.cfg.DepartureMarginMinutes) * time.Minute

	plan := &domain.TripPlan{
		TripID:          "trip_" + uuid.New().String(),
		Departure:       finalDeparture,
		DepartureWindow: [2]time.Time{finalDeparture.Add(-margin), finalDeparture.Add(margin)},
		RouteSummary: domain.RouteSummary{
			DistanceKm:  route.DistanceMeters / 1000,
			DurationMin: route.DurationSeconds / 60,
			Stops:       formatStops(stops),
		},
		MealSuggestions:     suggestions,
		PersonalizationUsed: profile != nil,
		CreatedAt:           time.Now().UTC(),
	}

	uc.publishPlanned(ctx, plan)

	return dto.ConvertPlan(plan), nil
}

// resolveMeals обрабатывает окна еды параллельно: они независимы друг от друга.
// Крюки внутри одного окна считаются последовательно, чтобы не заваливать роутер.
func (uc *TripUseCase) resolveMeals(
	ctx context.Context,
	mealWindows map[string]domain.TimeWindow,
	checkpoints []domain.Checkpoint,
	departure, arrival time.Time,
	source, destination domain.GeoPoint,
	profile *domain.PersonalizationProfile,
	vegetarian bool,
	maxDetour int,
) map[string][]domain.ScoredPlace {
	results := make(map[string][]domain.ScoredPlace, len(mealWindows))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for meal, window := range mealWindows {
		if !WindowOverlapsTrip(window, departure, arrival) {
			uc.logger.Debug("Meal window outside trip interval, skipping",
				zap.String("meal", meal),
				zap.String("window_start", window.Start),
				zap.String("window_end", window.End))
			continue
		}

		wg.Add(1)
		go func(meal string, window domain.TimeWindow) {
			defer wg.Done()
			places := uc.resolveMeal(ctx, meal, window, checkpoints, departure,
				source, destination, profile, vegetarian, maxDetour)
			mu.Lock()
			results[meal] = places
			mu.Unlock()
		}(meal, window)
	}
	wg.Wait()

	return results
}

func (uc *TripUseCase) resolveMeal(
	ctx context.Context,
	meal string,
	window domain.TimeWindow,
	checkpoints []domain.Checkpoint,
	departure time.Time,
	source, destination domain.GeoPoint,
	profile *domain.PersonalizationProfile,
	vegetarian bool,
	maxDetour int,
) []domain.ScoredPlace {
	match, err := FindPointForWindow(checkpoints, departure, window)
	if err != nil || match == nil {
		return []domain.ScoredPlace{}
	}

	tolerance := time.Duration(uc.cfg.ToleranceMinutes) * time.Minute
	if !ETAWithinTolerance(match.ETA, window, tolerance) {
		uc.logger.Debug("Checkpoint ETA too far from meal window",
			zap.String("meal", meal),
			zap.Time("eta", match.ETA))
		return []domain.ScoredPlace{}
	}

	// Лестница радиусов: расширяем поиск, пока не найдём кандидатов
	var candidates []domain.Place
	for _, radius := range uc.cfg.SearchRadiiMeters {
		found, err := uc.placesRepo.Search(ctx, match.Point, radius, uc.cfg.SearchCategory)
		if err != nil {
			uc.logger.Warn("Places search failed",
				zap.String("meal", meal),
				zap.Int("radius_m", radius),
				zap.Error(err))
			continue
		}
		if len(found) > 0 {
			candidates = found
			break
		}
	}
	if len(candidates) == 0 {
		return []domain.ScoredPlace{}
	}

	candidates = uc.filterByFoodPreference(candidates, profile, vegetarian)
	if len(candidates) > uc.cfg.CandidatePoolSize {
		candidates = candidates[:uc.cfg.CandidatePoolSize]
	}

	policy := PolicyFor(profile, vegetarian, maxDetour)
	scored := make([]domain.ScoredPlace, 0, len(candidates))
	for _, place := range candidates {
		estimate, err := uc.detour.Estimate(ctx, source, destination, place.Location)
		if err != nil {
			uc.logger.Debug("Detour estimation failed, skipping candidate",
				zap.String("place_id", place.ID),
				zap.Error(err))
			continue
		}
		if estimate.Minutes > maxDetour {
			continue
		}
		score, reasons := policy.Score(place, estimate.Minutes)
		scored = append(scored, domain.ScoredPlace{
			Place:         place,
			DetourMinutes: estimate.Minutes,
			ETA:           match.ETA.Add(time.Duration(estimate.Minutes) * time.Minute),
			Score:         score,
			MatchReasons:  reasons,
		})
	}

	// Стабильная сортировка сохраняет исходный порядок при равных оценках
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > uc.cfg.TopSuggestions {
		scored = scored[:uc.cfg.TopSuggestions]
	}
	return scored
}

// filterByFoodPreference отбрасывает только явные конфликты с пищевым ограничением.
// Кандидаты без сигналов остаются в пуле.
func (uc *TripUseCase) filterByFoodPreference(
	places []domain.Place,
	profile *domain.PersonalizationProfile,
	vegetarian bool,
) []domain.Place {
	pref := ""
	if profile != nil {
		pref = profile.FoodPreference
	} else if vegetarian {
		pref = domain.FoodPrefVegetarian
	}
	conflicts, ok := foodConflicts[pref]
	if !ok {
		return places
	}

	kept := make([]domain.Place, 0, len(places))
	for _, place := range places {
		haystack := strings.ToLower(place.Cuisine() + " " + place.Name)
		if containsAny(haystack, conflicts) {
			continue
		}
		kept = append(kept, place)
	}
	return kept
}

// publishPlanned отправляет построенный план в Redis Stream для фоновой архивации.
// Ошибка публикации не влияет на ответ клиенту.
func (uc *TripUseCase) publishPlanned(ctx context.Context, plan *domain.TripPlan) {
	if uc.streamRepo == nil {
		return
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamTripPlanned, plan); err != nil {
		uc.logger.Warn("Failed to publish trip plan to stream",
			zap.String("trip_id", plan.TripID),
			zap.Error(err))
	}
}

// GetTrip возвращает ранее заархивированный план поездки
func (uc *TripUseCase) GetTrip(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	if uc.tripRepo == nil {
		return nil, errors.ErrTripNotFound
	}
	plan, err := uc.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		uc.logger.Error("Failed to load trip plan", zap.String("trip_id", tripID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if plan == nil {
		return nil, errors.ErrTripNotFound
	}
	return plan, nil
}

func formatStops(stops []domain.GeoPoint) []string {
	if len(stops) == 0 {
		return nil
	}
	formatted := make([]string, 0, len(stops))
	for _, s := range stops {
		formatted = append(formatted, dto.FormatStop(s))
	}
	return formatted
}
