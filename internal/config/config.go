package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Port           string        `envconfig:"PORT" default:"3000"`
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	JWTAlgorithm   string        `envconfig:"JWT_ALGORITHM" default:"HS256"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"0s"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"10"`
	CookieDomain   string        `envconfig:"DOMAIN"`
	ClientURL      string        `envconfig:"CLIENT_URL"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"text"`
	GinMode        string        `envconfig:"GIN_MODE" default:"release"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}

	if cfg.TokenTTL < 0 {
		return nil, errors.New("TOKEN_TTL must not be negative")
	}

	cfg.JWTAlgorithm = strings.ToUpper(strings.TrimSpace(cfg.JWTAlgorithm))

	return &cfg, nil
}

// Origins returns the CORS and websocket allow-list.
func (c *Config) Origins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}

	for _, origin := range c.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
