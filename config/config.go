package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"PIPELINE_APP_NAME" envDefault:"opportunity-pipeline"`
	AppEnv       string `env:"PIPELINE_APP_ENV" envDefault:"local"`
	HTTPHost     string `env:"PIPELINE_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"PIPELINE_HTTP_PORT" envDefault:"8082"`
	HTTPBasePath string `env:"PIPELINE_HTTP_BASE_PATH" envDefault:"/api/v1"`

	DBHost     string `env:"PIPELINE_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"PIPELINE_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"PIPELINE_DB_USER" envDefault:"app"`
	DBPassword string `env:"PIPELINE_DB_PASSWORD" envDefault:"app_password"`
	DBName     string `env:"PIPELINE_DB_NAME" envDefault:"opportunitydb"`
	DBSSLMode  string `env:"PIPELINE_DB_SSLMODE" envDefault:"disable"`

	JWTSecret    string `env:"PIPELINE_JWT_SECRET"`
	JWTPublicKey string `env:"PIPELINE_JWT_PUBLIC_KEY"`
	JWTAudience  string `env:"PIPELINE_JWT_AUDIENCE" envDefault:"frontend"`
	JWTIssuer    string `env:"PIPELINE_JWT_ISSUER" envDefault:"auth-service"`

	NATSURL            string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSSessionSubject string `env:"NATS_SUBJECT_SESSION_COMPLETED" envDefault:"auth.sessionCompleted"`

	GenerationURL     string        `env:"PIPELINE_GENERATION_URL"`
	GenerationTimeout time.Duration `env:"PIPELINE_GENERATION_TIMEOUT" envDefault:"30s"`

	PageSizeDefault int `env:"PIPELINE_PAGE_SIZE_DEFAULT" envDefault:"50"`
	PageSizeMax     int `env:"PIPELINE_PAGE_SIZE_MAX" envDefault:"200"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
