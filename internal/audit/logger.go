package audit

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	reqctx "github.com/baechuer/real-time-ressys/services/account-service/internal/pkg/context"
)

// Logger writes account business events as structured audit lines.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Record logs one event. Its signature matches account.AuditFunc.
// Rejections are logged at warn, everything else at info. Email fields are masked.
func (l *Logger) Record(ctx context.Context, action string, fields map[string]string) {
	evt := l.log.Info()
	if strings.HasSuffix(action, "_rejected") {
		evt = l.log.Warn()
	}

	evt = evt.Str("action", action)
	if id := reqctx.GetRequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fields[k]
		if k == "email" {
			v = maskEmail(v)
		}
		evt = evt.Str(k, v)
	}
	evt.Msg(action)
}

// maskEmail keeps the first two characters of the local part and the domain.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 5 || at < 0 {
		return "***"
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
