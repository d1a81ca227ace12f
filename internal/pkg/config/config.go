package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/buildhub/property-api/internal/core/domain"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=24h"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	BcryptCost      int           `env:"BCRYPT_COST,      default=10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Onboarding OnboardingConfig
	Audit      AuditConfig
	Stats      StatsConfig
	Bootstrap  BootstrapConfig
}

type MongoConfig struct {
	URI          string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	RootDatabase string        `env:"MONGO_ROOT_DB, default=property_root"`
	Timeout      time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type OnboardingConfig struct {
	IdempotencyTTL time.Duration `env:"ONBOARDING_IDEMPOTENCY_TTL, default=24h"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type StatsConfig struct {
	Concurrency int `env:"STATS_CONCURRENCY, default=8"`
}

// BootstrapConfig seeds the first super admin when running `migrate root`.
type BootstrapConfig struct {
	Name     string `env:"BOOTSTRAP_ADMIN_NAME, default=Platform Admin"`
	Email    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func (c *Config) validate() error {
	root := domain.Namespace(c.Mongo.RootDatabase)
	if root == "" || root.IsTenant() || root.IsPlaceholder() {
		return fmt.Errorf("config: MONGO_ROOT_DB %q collides with tenant namespace names", c.Mongo.RootDatabase)
	}
	if c.Audit.Workers < 1 {
		return fmt.Errorf("config: AUDIT_WORKERS must be positive")
	}
	if c.Stats.Concurrency < 1 {
		return fmt.Errorf("config: STATS_CONCURRENCY must be positive")
	}
	return nil
}
