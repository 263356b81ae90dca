package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Business BusinessConfig
	Capacity CapacityConfig
	Bulk     BulkConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
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
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret        string `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration string `envconfig:"JWT_TOKEN_DURATION" default:"12h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// BusinessConfig decides what "today" and a booking's wall-clock time mean.
type BusinessConfig struct {
	TimeZone        string `envconfig:"BUSINESS_TIMEZONE" default:"UTC"`
	ReferencePrefix string `envconfig:"BOOKING_REFERENCE_PREFIX" default:"BK"`
}

type CapacityConfig struct {
	// DynamicSlotLock serializes availability-window bookings per slot with an
	// advisory lock. Off by default to keep the historical behaviour.
	DynamicSlotLock     bool          `envconfig:"CAPACITY_DYNAMIC_SLOT_LOCK" default:"false"`
	AlmostFullThreshold int           `envconfig:"CAPACITY_ALMOST_FULL_THRESHOLD" default:"3"`
	GuestsPerGuide      int           `envconfig:"CAPACITY_GUESTS_PER_GUIDE" default:"12"`
	RecalcTimeout       time.Duration `envconfig:"CAPACITY_RECALC_TIMEOUT" default:"10s"`
	MaxHeatmapDays      int           `envconfig:"CAPACITY_MAX_HEATMAP_DAYS" default:"93"`
}

type BulkConfig struct {
	MaxItems              int `envconfig:"BULK_MAX_ITEMS" default:"100"`
	RescheduleConcurrency int `envconfig:"BULK_RESCHEDULE_CONCURRENCY" default:"8"`
}

type JobsConfig struct {
	ReconcileSchedule string `envconfig:"JOBS_RECONCILE_SCHEDULE" default:"@every 1h"`
	ReconcileEnabled  bool   `envconfig:"JOBS_RECONCILE_ENABLED" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if _, err := cfg.Business.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", cfg.Business.TimeZone, err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:        "test-secret",
			TokenDuration: "1h",
		},
		Business: BusinessConfig{
			TimeZone:        "UTC",
			ReferencePrefix: "BK",
		},
		Capacity: CapacityConfig{
			AlmostFullThreshold: 3,
			GuestsPerGuide:      12,
			RecalcTimeout:       5 * time.Second,
			MaxHeatmapDays:      93,
		},
		Redis: RedisConfig{
			Addr: "localhost:16380",
		},
		Bulk: BulkConfig{
			MaxItems:              100,
			RescheduleConcurrency: 4,
		},
		Jobs: JobsConfig{
			ReconcileSchedule: "@every 1h",
		},
	}
}
