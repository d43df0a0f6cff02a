package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	OSRM     OSRMConfig
	Overpass OverpassConfig
	Planner  PlannerConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	BaselineTTL time.Duration
}

type OSRMConfig struct {
	BaseURL        string
	Profile        string
	RequestTimeout int // seconds
	MaxRetries     int
}

type OverpassConfig struct {
	URL            string
	RequestTimeout int // seconds
}

// PlannerConfig - настройки ядра планировщика
type PlannerConfig struct {
	ToleranceMinutes       int
	DepartureMarginMinutes int
	SearchRadiiMeters      []int
	SearchCategory         string
	CandidatePoolSize      int
	TopSuggestions         int
	FallbackSpeedKmh       float64
	DefaultMaxDetourMin    int
	DefaultMealDurationMin int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			BaselineTTL: time.Duration(viper.GetInt("BASELINE_CACHE_TTL")) * time.Second,
		},
		OSRM: OSRMConfig{
			BaseURL:        viper.GetString("OSRM_BASE_URL"),
			Profile:        viper.GetString("OSRM_PROFILE"),
			RequestTimeout: viper.GetInt("OSRM_REQUEST_TIMEOUT"),
			MaxRetries:     viper.GetInt("OSRM_MAX_RETRIES"),
		},
		Overpass: OverpassConfig{
			URL:            viper.GetString("OVERPASS_URL"),
			RequestTimeout: viper.GetInt("OVERPASS_REQUEST_TIMEOUT"),
		},
		Planner: PlannerConfig{
			ToleranceMinutes:       viper.GetInt("PLANNER_TOLERANCE_MINUTES"),
			DepartureMarginMinutes: viper.GetInt("PLANNER_DEPARTURE_MARGIN_MINUTES"),
			SearchRadiiMeters:      parseIntList(viper.GetString("PLANNER_SEARCH_RADII")),
			SearchCategory:         viper.GetString("PLANNER_SEARCH_CATEGORY"),
			CandidatePoolSize:      viper.GetInt("PLANNER_CANDIDATE_POOL_SIZE"),
			TopSuggestions:         viper.GetInt("PLANNER_TOP_SUGGESTIONS"),
			FallbackSpeedKmh:       viper.GetFloat64("PLANNER_FALLBACK_SPEED_KMH"),
			DefaultMaxDetourMin:    viper.GetInt("PLANNER_DEFAULT_MAX_DETOUR_MIN"),
			DefaultMealDurationMin: viper.GetInt("PLANNER_DEFAULT_MEAL_DURATION_MIN"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.BaselineTTL == 0 {
		cfg.Cache.BaselineTTL = 6 * time.Hour
	}
	if cfg.OSRM.BaseURL == "" {
		cfg.OSRM.BaseURL = "http://router.project-osrm.org"
	}
	if cfg.OSRM.Profile == "" {
		cfg.OSRM.Profile = "driving"
	}
	if cfg.OSRM.RequestTimeout == 0 {
		cfg.OSRM.RequestTimeout = 15
	}
	if cfg.OSRM.MaxRetries == 0 {
		cfg.OSRM.MaxRetries = 3
	}
	if cfg.Overpass.URL == "" {
		cfg.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 30
	}
	if cfg.Planner.ToleranceMinutes == 0 {
		cfg.Planner.ToleranceMinutes = 30
	}
	if cfg.Planner.DepartureMarginMinutes == 0 {
		cfg.Planner.DepartureMarginMinutes = 15
	}
	if len(cfg.Planner.SearchRadiiMeters) == 0 {
		cfg.Planner.SearchRadiiMeters = []int{3000, 7000, 15000}
	}
	if cfg.Planner.SearchCategory == "" {
		cfg.Planner.SearchCategory = "restaurant"
	}
	if cfg.Planner.CandidatePoolSize == 0 {
		cfg.Planner.CandidatePoolSize = 12
	}
	if cfg.Planner.TopSuggestions == 0 {
		cfg.Planner.TopSuggestions = 5
	}
	if cfg.Planner.FallbackSpeedKmh == 0 {
		cfg.Planner.FallbackSpeedKmh = 40.0
	}
	if cfg.Planner.DefaultMaxDetourMin == 0 {
		cfg.Planner.DefaultMaxDetourMin = 15
	}
	if cfg.Planner.DefaultMealDurationMin == 0 {
		cfg.Planner.DefaultMealDurationMin = 30
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "trip-archive-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func parseIntList(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			continue
		}
		result = append(result, v)
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
