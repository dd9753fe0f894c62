package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env   string      `yaml:"env"`
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
	S3    S3Config    `yaml:"s3"`
	Auth  AuthConfig  `yaml:"auth"`
	CORS  CORSConfig  `yaml:"cors"`
	Rate  RateConfig  `yaml:"rate"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type AuthConfig struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
	DefaultRole   string        `yaml:"default_role"`
	Policy        PolicyConfig  `yaml:"policy"`
}

// PolicyConfig maps route groups to the role they require. An empty value
// means any authenticated caller, "public" disables the gate for the group.
type PolicyConfig struct {
	PlacesWrite    string `yaml:"places_write"`
	PlacesDelete   string `yaml:"places_delete"`
	FeedbackDelete string `yaml:"feedback_delete"`
	BookingsRead   string `yaml:"bookings_read"`
	BookingsDelete string `yaml:"bookings_delete"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	CheckReferer   bool     `yaml:"check_referer"`
}

type RateConfig struct {
	LoginPerMinute int `yaml:"login_per_minute"`
	LoginPer10Sec  int `yaml:"login_per_10sec"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":5000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "visitkarnataka",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		S3: S3Config{
			Endpoint:  "localhost:9000",
			AccessKey: "minio",
			SecretKey: "minio123",
			Bucket:    "vk-places",
			UseSSL:    false,
		},
		Auth: AuthConfig{
			AccessSecret:  "change-me",
			RefreshSecret: "change-me-too",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    720 * time.Hour,
			BcryptCost:    10,
			DefaultRole:   "User",
			Policy: PolicyConfig{
				PlacesWrite:    "Admin",
				PlacesDelete:   "Admin",
				FeedbackDelete: "Admin",
				BookingsRead:   "Admin",
				BookingsDelete: "Admin",
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"https://visit-karnataka-frontend.vercel.app"},
			CheckReferer:   false,
		},
		Rate: RateConfig{
			LoginPerMinute: 30,
			LoginPer10Sec:  10,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("MONGO_URL"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if err := overrideBool("S3_USE_SSL", &cfg.S3.UseSSL); err != nil {
		return err
	}

	if v := os.Getenv("JWT_ACCESS_SECRET"); v != "" {
		cfg.Auth.AccessSecret = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		cfg.Auth.RefreshSecret = v
	}
	if err := overrideDuration("JWT_ACCESS_TTL", &cfg.Auth.AccessTTL); err != nil {
		return err
	}
	if err := overrideDuration("JWT_REFRESH_TTL", &cfg.Auth.RefreshTTL); err != nil {
		return err
	}
	if err := overrideInt("BCRYPT_COST", &cfg.Auth.BcryptCost); err != nil {
		return err
	}
	if v := os.Getenv("AUTH_DEFAULT_ROLE"); v != "" {
		cfg.Auth.DefaultRole = v
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if err := overrideBool("CORS_CHECK_REFERER", &cfg.CORS.CheckReferer); err != nil {
		return err
	}

	if err := overrideInt("RATE_LOGIN_PER_MINUTE", &cfg.Rate.LoginPerMinute); err != nil {
		return err
	}
	if err := overrideInt("RATE_LOGIN_PER_10SEC", &cfg.Rate.LoginPer10Sec); err != nil {
		return err
	}

	return nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(key string, target *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s bool: %w", key, err)
	}
	*target = b
	return nil
}
