package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"3318"`
	StoreType      string   `env:"STORE_TYPE" envDefault:"memory"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	IPHashSalt     string   `env:"IP_HASH_SALT"`
	DefaultSource  string   `env:"DEFAULT_SOURCE" envDefault:"website"`
	ProductName    string   `env:"PRODUCT_NAME" envDefault:"SiikHub"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,https://siikhub.com"`
	Version        string   `env:"SERVICE_VERSION" envDefault:"1.0.0"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadDotEnv copies KEY=value pairs from the given files into the
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("siikhub-waitlist", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.StoreType, "t", cfg.StoreType, "Store type (memory, sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "IP hash salt (prefer env)")

	fs.StringVar(&cfg.DefaultSource, "source", cfg.DefaultSource, "Source tag for signups that omit one")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.StoreType = strings.ToLower(strings.TrimSpace(cfg.StoreType))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.StoreType {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown store type %q (want memory, sqlite or postgres)", c.StoreType)
	}

	// Secrets - MUST be provided
	if c.IPHashSalt == "" {
		return errors.New("IP_HASH_SALT required")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
