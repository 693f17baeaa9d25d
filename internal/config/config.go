package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	// App
	Env            string `env:"ENV" envDefault:"dev"` // dev / staging / prod
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP. HTTPAddr wins over PORT when both are set.
	HTTPAddr         string        `env:"HTTP_ADDR"`
	Port             string        `env:"PORT" envDefault:"5000"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"1m"`
	HTTPMaxBodyBytes int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"102400"`

	FrontendOrigin     string   `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	// Storage
	StoreDriver      string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBAddr           string `env:"DB_ADDR"`
	DBDebug          bool   `env:"DB_DEBUG" envDefault:"false"`
	DBAutoMigrate    bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	SeedDemoAccounts bool   `env:"SEED_DEMO_ACCOUNTS" envDefault:"false"`

	// Optional infrastructure. Empty addresses turn the feature off.
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	AccountCacheTTL time.Duration `env:"ACCOUNT_CACHE_TTL" envDefault:"5m"`
	RabbitURL       string        `env:"RABBIT_URL"`
	RabbitExchange  string        `env:"RABBIT_EXCHANGE" envDefault:"account.events"`

	// Credentials
	PasswordHasher    string `env:"PASSWORD_HASHER" envDefault:"plain"`
	BcryptCost        int    `env:"BCRYPT_COST" envDefault:"10"`
	MinPasswordLength int    `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`

	Email EmailConfig

	// Tracing
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// EmailConfig is the EmailJS account plus dispatch tuning. Missing credentials
// are not a startup error; each send reports them instead.
type EmailConfig struct {
	ServiceID      string        `env:"EMAILJS_SERVICE_ID"`
	TemplateID     string        `env:"EMAILJS_TEMPLATE_ID"`
	UserID         string        `env:"EMAILJS_USER_ID"`
	ToEmail        string        `env:"EMAILJS_TO_EMAIL"`
	Endpoint       string        `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	MaxAttempts    int           `env:"EMAIL_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"EMAIL_RETRY_BASE_DELAY" envDefault:"1s"`
	RetryMaxDelay  time.Duration `env:"EMAIL_RETRY_MAX_DELAY" envDefault:"30s"`
	AttemptTimeout time.Duration `env:"EMAIL_ATTEMPT_TIMEOUT" envDefault:"10s"`
	VerifyLinkBase string        `env:"VERIFY_LINK_BASE_URL" envDefault:"http://localhost:5000/api/auth/verify"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":" + cfg.Port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBAddr == "" {
			return fmt.Errorf("missing required env var: DB_ADDR")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.StoreDriver)
	}

	switch strings.ToLower(c.PasswordHasher) {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("PASSWORD_HASHER must be plain or bcrypt, got %q", c.PasswordHasher)
	}

	if c.Email.MaxAttempts < 1 {
		return fmt.Errorf("EMAIL_MAX_ATTEMPTS must be >= 1")
	}
	if c.MinPasswordLength < 1 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be >= 1")
	}

	// Sends run inside the request; the write timeout must outlast a full retry cycle.
	if budget := c.Email.DispatchBudget(); c.HTTPWriteTimeout > 0 && c.HTTPWriteTimeout < budget {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT (%s) is shorter than the email dispatch budget (%s)", c.HTTPWriteTimeout, budget)
	}
	return nil
}

// DispatchBudget is the longest a single send can block: every attempt timing
// out plus the backoff between attempts.
func (e EmailConfig) DispatchBudget() time.Duration {
	total := time.Duration(e.MaxAttempts) * e.AttemptTimeout
	for attempt := 1; attempt < e.MaxAttempts; attempt++ {
		d := e.RetryBaseDelay << attempt
		if e.RetryMaxDelay > 0 && d > e.RetryMaxDelay {
			d = e.RetryMaxDelay
		}
		total += d
	}
	return total
}

// ListenPort is the port part of HTTPAddr, reported by the health endpoint.
func (c *Config) ListenPort() string {
	if _, port, err := net.SplitHostPort(c.HTTPAddr); err == nil {
		return port
	}
	return c.Port
}

func (c *Config) IsProd() bool { return c.Env == "prod" || c.Env == "production" }
