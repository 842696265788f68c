package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, API keys)
// - default: Values common across all environments (timeouts, debounce, business limits)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Log      LogConfig
	Backend  BackendConfig
	Places   PlacesConfig
	Composer ComposerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	Format         string `envconfig:"LOG_FORMAT" default:"json"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type BackendConfig struct {
	BaseURL        string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	Token          string        `envconfig:"BACKEND_TOKEN" required:"true"`
	RequestTimeout time.Duration `envconfig:"BACKEND_REQUEST_TIMEOUT" default:"10s"`
	// Circuit breaker
	BreakerMaxRequests  uint32        `envconfig:"BACKEND_BREAKER_MAX_REQUESTS" default:"1"`
	BreakerInterval     time.Duration `envconfig:"BACKEND_BREAKER_INTERVAL" default:"60s"`
	BreakerTimeout      time.Duration `envconfig:"BACKEND_BREAKER_TIMEOUT" default:"30s"`
	BreakerFailureRatio float64       `envconfig:"BACKEND_BREAKER_FAILURE_RATIO" default:"0.6"`
	BreakerMinRequests  uint32        `envconfig:"BACKEND_BREAKER_MIN_REQUESTS" default:"5"`
}

type PlacesConfig struct {
	BaseURL        string        `envconfig:"PLACES_BASE_URL" default:"https://maps.googleapis.com/maps/api"`
	APIKey         string        `envconfig:"PLACES_API_KEY" required:"true"`
	Country        string        `envconfig:"PLACES_COUNTRY" default:""`
	RequestTimeout time.Duration `envconfig:"PLACES_REQUEST_TIMEOUT" default:"5s"`
	RatePerSecond  float64       `envconfig:"PLACES_RATE_PER_SECOND" default:"10"`
	RateBurst      int           `envconfig:"PLACES_RATE_BURST" default:"5"`
}

type ComposerConfig struct {
	PredictionDebounce time.Duration `envconfig:"COMPOSER_PREDICTION_DEBOUNCE" default:"200ms"`
	ConversionDebounce time.Duration `envconfig:"COMPOSER_CONVERSION_DEBOUNCE" default:"250ms"`
	MinLitres          int           `envconfig:"COMPOSER_MIN_LITRES" default:"25"`
	MaxLitres          int           `envconfig:"COMPOSER_MAX_LITRES" default:"5000"`
	DayStartHour       int           `envconfig:"COMPOSER_DAY_START_HOUR" default:"5"`
	DayEndHour         int           `envconfig:"COMPOSER_DAY_END_HOUR" default:"21"`
	SlotWidth          time.Duration `envconfig:"COMPOSER_SLOT_WIDTH" default:"2h"`
	SessionTTL         time.Duration `envconfig:"COMPOSER_SESSION_TTL" default:"30m"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Composer.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c ComposerConfig) Validate() error {
	if c.MinLitres <= 0 || c.MaxLitres < c.MinLitres {
		return fmt.Errorf("invalid litre limits: [%d, %d]", c.MinLitres, c.MaxLitres)
	}
	if c.DayStartHour < 0 || c.DayEndHour > 24 || c.DayEndHour <= c.DayStartHour {
		return fmt.Errorf("invalid daily slot range: %02d:00-%02d:00", c.DayStartHour, c.DayEndHour)
	}
	if c.SlotWidth < time.Hour || c.SlotWidth%time.Hour != 0 {
		return fmt.Errorf("slot width must be a whole number of hours: %s", c.SlotWidth)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			Format:     "text",
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Backend: BackendConfig{
			BaseURL:             "http://localhost:18080",
			Token:               "test-token",
			RequestTimeout:      2 * time.Second,
			BreakerMaxRequests:  1,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      time.Second,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  5,
		},
		Places: PlacesConfig{
			BaseURL:        "http://localhost:18081",
			APIKey:         "test-key",
			RequestTimeout: 2 * time.Second,
			RatePerSecond:  1000,
			RateBurst:      100,
		},
		Composer: ComposerConfig{
			PredictionDebounce: 0,
			ConversionDebounce: 0,
			MinLitres:          25,
			MaxLitres:          5000,
			DayStartHour:       5,
			DayEndHour:         21,
			SlotWidth:          2 * time.Hour,
			SessionTTL:         30 * time.Minute,
		},
	}
}
