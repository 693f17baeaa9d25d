package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/audit"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/emailjs"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/retry"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/oauth"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/tracing"
	http_handlers "github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps.withDefaults())
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)

	NewTracing func(ctx context.Context, cfg tracing.Config) (*tracing.Provider, error)

	// EmailHTTPClient overrides the client used to reach the email provider.
	EmailHTTPClient *http.Client
}

// Publisher is the event sink plus its connection lifecycle.
type Publisher interface {
	account.EventPublisher
	Close() error
}

type pinger interface {
	Ping(ctx context.Context) error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 1) tracing
	tp, err := deps.NewTracing(context.Background(), tracing.Config{
		ServiceName:    tracing.InstrumentationName,
		ServiceVersion: cfg.ServiceVersion,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		return fail(err)
	}
	cleanupFns = append(cleanupFns, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	})

	// 2) store
	var (
		accounts    account.AccountRepo
		contacts    account.ContactRepo
		storePinger pinger
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Logger.Warn().Msg("using in-memory store; data is lost on restart")
		mem := memory.NewAccountRepo()
		accounts, contacts, storePinger = mem, memory.NewContactRepo(), mem
	default:
		db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return fail(err)
		}
		if db == nil {
			return fail(errNilDB)
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })

		if cfg.DBAutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := postgres.EnsureSchema(ctx, db)
			cancel()
			if err != nil {
				return fail(err)
			}
		}
		pg := postgres.NewAccountRepo(db)
		accounts, contacts, storePinger = pg, postgres.NewContactRepo(db), pg
	}

	// 3) hasher
	hasher, err := security.NewHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		return fail(err)
	}

	// seed against the store itself so the cache never sees half-written rows
	if cfg.SeedDemoAccounts {
		account.SeedDemoAccounts(context.Background(), accounts, hasher)
	}

	// 4) redis (best-effort)
	if cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; account cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			accounts = redis.NewCachedAccountRepo(accounts, c, cfg.AccountCacheTTL)
		}
	}

	// 5) publisher
	var pub account.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		switch {
		case err == nil:
			cleanupFns = append(cleanupFns, func() { _ = p.Close() })
			pub = p
		case cfg.IsProd():
			return fail(err)
		default:
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; events are dropped")
		}
	}

	// 6) email
	mailer := NewMailer(cfg, deps.EmailHTTPClient)

	// 7) service
	svc := account.NewService(
		accounts,
		contacts,
		mailer,
		hasher,
		pub,
		oauth.NewGoogleStubDecoder(),
		account.Config{MinPasswordLength: cfg.MinPasswordLength},
	)

	svc = svc.WithAudit(audit.New(logger.Logger).Record)

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:  http_handlers.NewHealthHandler(storePinger, cfg.ListenPort()),
		Account: http_handlers.NewAccountHandler(svc, cfg.FrontendOrigin),
		Google:  http_handlers.NewGoogleHandler(svc),
		Contact: http_handlers.NewContactHandler(svc),
		Middlewares: []router.Middleware{
			middleware.RequestID,
			middleware.AccessLog,
			middleware.Metrics,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.BodyLimit(cfg.HTTPMaxBodyBytes),
		},
		Metrics: promhttp.Handler(),
	})
	if err != nil {
		return fail(err)
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      otelhttp.NewHandler(mux, "account-service"),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() { runCleanup(cleanupFns) })
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewRouter:  router.New,
		NewTracing: tracing.Init,
	}
}

// withDefaults fills unset constructors so tests only override what they exercise.
func (d Deps) withDefaults() Deps {
	def := defaultDeps()
	if d.LoadConfig == nil {
		d.LoadConfig = def.LoadConfig
	}
	if d.NewDB == nil {
		d.NewDB = def.NewDB
	}
	if d.NewRedis == nil {
		d.NewRedis = def.NewRedis
	}
	if d.NewPublisher == nil {
		d.NewPublisher = def.NewPublisher
	}
	if d.NewRouter == nil {
		d.NewRouter = def.NewRouter
	}
	if d.NewTracing == nil {
		d.NewTracing = def.NewTracing
	}
	return d
}

/*
========================
 helpers
========================
*/

var errNilDB = errors.New("bootstrap: NewDB returned nil")

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// NewMailer builds the EmailJS dispatcher from cfg. A nil client keeps the default.
func NewMailer(cfg *config.Config, client *http.Client) *emailjs.Dispatcher {
	var opts []emailjs.Option
	if client != nil {
		opts = append(opts, emailjs.WithHTTPClient(client))
	}
	return emailjs.New(emailjs.Config{
		ServiceID:         cfg.Email.ServiceID,
		TemplateID:        cfg.Email.TemplateID,
		UserID:            cfg.Email.UserID,
		DefaultRecipient:  cfg.Email.ToEmail,
		Endpoint:          cfg.Email.Endpoint,
		VerifyLinkBaseURL: cfg.Email.VerifyLinkBase,
		AttemptTimeout:    cfg.Email.AttemptTimeout,
		Retry: retry.Policy{
			MaxAttempts: cfg.Email.MaxAttempts,
			BaseDelay:   cfg.Email.RetryBaseDelay,
			MaxDelay:    cfg.Email.RetryMaxDelay,
		},
	}, opts...)
}
