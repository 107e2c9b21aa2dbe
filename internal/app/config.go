package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/cemse-backend/internal/data/db"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	"github.com/yungbote/cemse-backend/internal/platform/envutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type Config struct {
	Port            string        `yaml:"port"`
	LogMode         string        `yaml:"log_mode"`
	Environment     string        `yaml:"environment"`
	ServiceName     string        `yaml:"service_name"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`

	JWTSecretKey   string `yaml:"jwt_secret_key"`
	SanitizePolicy string `yaml:"sanitize_policy"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Otel     OtelConfig     `yaml:"otel"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlite_path"`
}

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func DefaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		Environment:     "development",
		ServiceName:     "cemse-backend",
		ShutdownTimeout: 15 * time.Second,
		SanitizePolicy:  string(bp.PolicyScriptStrip),
		Database: DatabaseConfig{
			Driver: db.DriverPostgres,
			Host:   "localhost",
			Port:   "5432",
			User:   "postgres",
			Name:   "cemse",
		},
		Redis: RedisConfig{Channel: "business_plan_events"},
		Otel:  OtelConfig{SampleRatio: 0.1},
	}
}

// LoadConfig starts from defaults, overlays the YAML file named by CONFIG_FILE
// and finally the environment. Environment variables always win.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	cfg.applyEnv(log)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(log *logger.Logger) {
	c.Port = envutil.String("PORT", c.Port, log)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode, log)
	c.Environment = envutil.String("APP_ENV", c.Environment, log)
	c.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.ServiceName, log)
	c.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout, log)
	if raw := envutil.String("CORS_ORIGINS", "", log); raw != "" {
		c.CORSOrigins = strings.Split(raw, ",")
	}

	c.JWTSecretKey = envutil.String("JWT_SECRET_KEY", c.JWTSecretKey, log)
	c.SanitizePolicy = envutil.String("SANITIZE_POLICY", c.SanitizePolicy, log)

	c.Database.Driver = envutil.String("DB_DRIVER", c.Database.Driver, log)
	c.Database.DSN = envutil.String("POSTGRES_DSN", c.Database.DSN, log)
	c.Database.Host = envutil.String("POSTGRES_HOST", c.Database.Host, log)
	c.Database.Port = envutil.String("POSTGRES_PORT", c.Database.Port, log)
	c.Database.User = envutil.String("POSTGRES_USER", c.Database.User, log)
	c.Database.Password = envutil.String("POSTGRES_PASSWORD", c.Database.Password, log)
	c.Database.Name = envutil.String("POSTGRES_NAME", c.Database.Name, log)
	c.Database.SQLitePath = envutil.String("SQLITE_PATH", c.Database.SQLitePath, log)

	c.Redis.Addr = envutil.String("REDIS_ADDR", c.Redis.Addr, log)
	c.Redis.Channel = envutil.String("REDIS_CHANNEL", c.Redis.Channel, log)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled, log)
	c.Otel.Exporter = envutil.String("OTEL_EXPORTER", c.Otel.Exporter, log)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint, log)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers, log)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure, log)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", c.Otel.SampleRatio, log)
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if _, err := bp.ParsePolicy(c.SanitizePolicy); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c Config) dbConfig() db.Config {
	return db.Config{
		Driver:     c.Database.Driver,
		DSN:        c.Database.DSN,
		Host:       c.Database.Host,
		Port:       c.Database.Port,
		User:       c.Database.User,
		Password:   c.Database.Password,
		Name:       c.Database.Name,
		SQLitePath: c.Database.SQLitePath,
	}
}
