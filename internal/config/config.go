package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every externally tunable setting. It is constructed once at
// startup and passed down explicitly; nothing else in the codebase reads the
// environment directly.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" env-default:":8008"`
	DBPath     string `env:"DB_PATH" env-default:"kanban-board.db"`

	JWT struct {
		Secret   string        `env:"JWT_SECRET" env-default:"development-insecure-secret-change-me"`
		Issuer   string        `env:"JWT_ISSUER" env-default:"kanban-board-api"`
		Audience string        `env:"JWT_AUDIENCE" env-default:"kanban-board-clients"`
		TTL      time.Duration `env:"JWT_TTL" env-default:"24h"`
	}

	Log struct {
		File  string `env:"LOG_FILE" env-default:""`
		Level string `env:"LOG_LEVEL" env-default:"info"`
	}

	// Bootstrap admin created on first start when the users table is empty.
	Admin struct {
		Username string `env:"ADMIN_USERNAME" env-default:"admin"`
		Password string `env:"ADMIN_PASSWORD" env-default:""`
	}
}

// Load reads an optional .env file and then the process environment into a
// Config. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
