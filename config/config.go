package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App          AppConfig
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Log          LogConfig
	Recurrence   RecurrenceConfig
	Notification NotificationConfig
	Telemetry    TelemetryConfig
	CORS         CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type LogConfig struct {
	Level string
}

type RecurrenceConfig struct {
	Enabled       bool
	ScheduleTime  string
	Timezone      string
	CheckInterval time.Duration
	BatchTimeout  time.Duration
	RunOnStartup  bool
	AdvisoryLock  bool
	LockKey       int64
}

// Location resolve o fuso usado para converter o relógio em "hoje".
func (r RecurrenceConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(r.Timezone)
}

type NotificationConfig struct {
	QueueSize int
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxOpen, err := getIntEnv("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getIntEnv("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}
	connLifetime, err := getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	checkInterval, err := getDurationEnv("RECURRENCE_CHECK_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	batchTimeout, err := getDurationEnv("RECURRENCE_BATCH_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	lockKey, err := strconv.ParseInt(getEnv("RECURRENCE_LOCK_KEY", "727001"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RECURRENCE_LOCK_KEY: %w", err)
	}
	queueSize, err := getIntEnv("NOTIFICATION_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "fincontrol"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            dbPort,
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "fincontrol"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			DSN:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: connLifetime,
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Recurrence: RecurrenceConfig{
			Enabled:       getBoolEnv("RECURRENCE_ENABLED", true),
			ScheduleTime:  getEnv("RECURRENCE_SCHEDULE_TIME", "00:05"),
			Timezone:      getEnv("RECURRENCE_TIMEZONE", "UTC"),
			CheckInterval: checkInterval,
			BatchTimeout:  batchTimeout,
			RunOnStartup:  getBoolEnv("RECURRENCE_RUN_ON_STARTUP", false),
			AdvisoryLock:  getBoolEnv("RECURRENCE_ADVISORY_LOCK", true),
			LockKey:       lockKey,
		},
		Notification: NotificationConfig{
			QueueSize: queueSize,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", true),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "fincontrol-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
		)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.IsProduction() && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Recurrence.CheckInterval <= 0 {
		return fmt.Errorf("RECURRENCE_CHECK_INTERVAL must be positive")
	}
	if c.Notification.QueueSize < 1 {
		return fmt.Errorf("NOTIFICATION_QUEUE_SIZE must be at least 1")
	}
	if _, err := c.Recurrence.Location(); err != nil {
		return fmt.Errorf("invalid RECURRENCE_TIMEZONE: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
