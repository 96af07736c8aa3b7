package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret"`
		AccessTTL       int    `yaml:"access_ttl"`        // minutes
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"` // hours
	} `yaml:"jwt"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	CORS struct {
		// Mode: "allowlist" (default), "mirror" or "permissive".
		// The mirror/permissive variants are refused in production.
		Mode           string   `yaml:"mode"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Recommendations struct {
		BehaviorWindowDays int `yaml:"behavior_window_days"` // default 30
		CacheTTLMinutes    int `yaml:"cache_ttl_minutes"`    // default 15
		ExpiryDays         int `yaml:"expiry_days"`          // default 14
	} `yaml:"recommendations"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test and container deployments).
func LoadConfig() {
	var cfg Config

	// .env is optional; ignore the error when the file is absent.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.AccessTTL = 60
	cfg.JWT.RefreshTTLHours = 24 * 30

	cfg.Redis.Enabled = os.Getenv("REDIS_ADDR") != ""
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	cfg.CORS.Mode = os.Getenv("CORS_MODE")
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 60
	}
	if cfg.JWT.RefreshTTLHours == 0 {
		cfg.JWT.RefreshTTLHours = 24 * 30
	}
	if cfg.CORS.Mode == "" {
		cfg.CORS.Mode = "allowlist"
	}
	if cfg.Recommendations.BehaviorWindowDays == 0 {
		cfg.Recommendations.BehaviorWindowDays = 30
	}
	if cfg.Recommendations.CacheTTLMinutes == 0 {
		cfg.Recommendations.CacheTTLMinutes = 15
	}
	if cfg.Recommendations.ExpiryDays == 0 {
		cfg.Recommendations.ExpiryDays = 14
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
