package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/bootstrap"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

// minDrain bounds graceful shutdown when the server has no write timeout.
const minDrain = 15 * time.Second

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

// app is everything Run needs from bootstrap.
type app struct {
	srv     httpServer
	cleanup func()
	// drain is how long in-flight requests get after a shutdown signal.
	drain time.Duration
}

type appBuilder func() (*app, error)

// Run serves until a signal arrives or the listener fails, and returns the exit code.
func Run(build appBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	a, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	if a.cleanup != nil {
		defer a.cleanup()
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", a.srv.Addr()).Msg("account service listening")
		err := a.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		lg.Error().Err(err).Msg("listener failed")
		return 1
	}

	drain := a.drain
	if drain < minDrain {
		drain = minDrain
	}
	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()

	if err := a.srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Dur("drain", drain).Msg("graceful shutdown failed, closing")
		_ = a.srv.Close()
	}

	lg.Info().Msg("shutdown complete")
	return 0
}

func buildFromBootstrap() (*app, error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, err
	}
	// A register request can spend its whole write timeout on email retries.
	return &app{
		srv:     realServer{srv},
		cleanup: cleanup,
		drain:   srv.WriteTimeout + 5*time.Second,
	}, nil
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(Run(buildFromBootstrap, sigCh, zlog.Logger))
}
