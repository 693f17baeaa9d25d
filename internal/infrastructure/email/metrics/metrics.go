package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Name:      "email_sent_total",
			Help:      "Total number of emails accepted by the provider",
		},
		[]string{"mode"},
	)

	emailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Name:      "email_failed_total",
			Help:      "Total number of email dispatches that ended in failure",
		},
		[]string{"mode", "error_kind"},
	)

	emailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "account_service",
			Name:      "email_send_duration_seconds",
			Help:      "Email dispatch duration in seconds, retries included",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"mode"},
	)

	// Counts waits between attempts, not first attempts.
	retryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Name:      "email_retry_attempts_total",
			Help:      "Total number of email retry attempts",
		},
		[]string{"mode"},
	)
)

// RecordEmailSent records a successfully sent email.
func RecordEmailSent(mode string, duration time.Duration) {
	emailsSentTotal.WithLabelValues(mode).Inc()
	emailSendDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordEmailFailed records a dispatch that gave up.
func RecordEmailFailed(mode, errorKind string, duration time.Duration) {
	emailsFailedTotal.WithLabelValues(mode, errorKind).Inc()
	emailSendDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordRetryAttempt(mode string) {
	retryAttemptsTotal.WithLabelValues(mode).Inc()
}
