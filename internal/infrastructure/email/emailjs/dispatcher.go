package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/metrics"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/retry"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/tracing"
)

const maxResponseBody = 64 << 10

// Result is the outcome of one Send. Err and Status describe the last attempt.
type Result struct {
	Sent     bool
	Response string
	Status   int
	Attempts int
	Err      error
}

// ErrorMessage is the caller-facing failure text, empty on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	var e *Error
	if errors.As(r.Err, &e) {
		return e.Message()
	}
	return r.Err.Error()
}

// Dispatcher sends templated email through the EmailJS REST API.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	cfg    Config
	client *http.Client
	sleep  retry.Sleeper
}

type Option func(*Dispatcher)

func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithSleeper replaces the backoff wait.
func WithSleeper(s retry.Sleeper) Option {
	return func(d *Dispatcher) { d.sleep = s }
}

func New(cfg Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg.withDefaults(),
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send validates configuration, then posts the email with bounded retries.
func (d *Dispatcher) Send(ctx context.Context, p Params) Result {
	mode := p.Mode()
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "emailjs.Send")
	defer span.End()
	span.SetAttributes(attribute.String("email.mode", string(mode)))

	lg := logger.WithCtx(ctx).With().Str("email_mode", string(mode)).Logger()

	if missing := d.cfg.missingCredentials(); len(missing) > 0 {
		err := &Error{Kind: KindConfiguration, Err: fmt.Errorf("EmailJS configuration missing: %s", strings.Join(missing, ", "))}
		lg.Error().Strs("missing", missing).Msg("email dispatch not configured")
		return d.fail(span, mode, start, Result{Err: err})
	}

	recipient := strings.TrimSpace(p.RecipientEmail)
	if recipient == "" {
		recipient = strings.TrimSpace(d.cfg.DefaultRecipient)
	}
	if recipient == "" {
		err := &Error{Kind: KindConfiguration, Err: errors.New("No recipient email provided")}
		lg.Error().Msg("email dispatch has no recipient")
		return d.fail(span, mode, start, Result{Err: err})
	}

	body, err := json.Marshal(buildPayload(d.cfg, p, recipient))
	if err != nil {
		return d.fail(span, mode, start, Result{Err: fmt.Errorf("marshal emailjs payload: %w", err)})
	}

	var res Result
	opts := []retry.Option{
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			metrics.RecordRetryAttempt(string(mode))
			lg.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", d.cfg.Retry.MaxAttempts).
				Dur("retry_in", delay).Msg("email attempt failed, retrying")
		}),
	}
	if d.sleep != nil {
		opts = append(opts, retry.WithSleeper(d.sleep))
	}

	attempts, err := retry.Do(ctx, d.cfg.Retry, Retryable, func(ctx context.Context, attempt int) error {
		resp, status, err := d.attempt(ctx, body)
		res.Status = status
		if err == nil {
			res.Response = resp
		}
		return err
	}, opts...)
	res.Attempts = attempts
	span.SetAttributes(attribute.Int("email.attempts", attempts))

	if err != nil {
		// Keep the last attempt's error so callers see the provider's own text.
		var last *Error
		if errors.As(err, &last) {
			res.Err = last
		} else {
			res.Err = err
		}
		lg.Error().Err(err).Int("attempts", attempts).Int("status", res.Status).Str("to", recipient).
			Msg("email dispatch failed")
		return d.fail(span, mode, start, res)
	}

	res.Sent = true
	metrics.RecordEmailSent(string(mode), time.Since(start))
	lg.Info().Int("attempts", attempts).Str("to", recipient).Msg("email sent")
	return res
}

func (d *Dispatcher) attempt(ctx context.Context, body []byte) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", 0, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	text := string(raw)
	if err := classifyStatus(resp.StatusCode, text); err != nil {
		return "", resp.StatusCode, err
	}
	return text, resp.StatusCode, nil
}

func (d *Dispatcher) fail(span trace.Span, mode Mode, start time.Time, res Result) Result {
	kind := "unknown"
	var e *Error
	if errors.As(res.Err, &e) {
		kind = string(e.Kind)
	}
	span.RecordError(res.Err)
	span.SetStatus(codes.Error, kind)
	metrics.RecordEmailFailed(string(mode), kind, time.Since(start))
	return res
}
