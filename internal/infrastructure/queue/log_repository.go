package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// LogRepository is a ports.AuditRepository that writes entries to the logger.
// It is used when no database is configured.
type LogRepository struct {
	log zerolog.Logger
}

func NewLogRepository(log zerolog.Logger) *LogRepository {
	return &LogRepository{log: log}
}

func (r *LogRepository) Insert(_ context.Context, entry domain.AuditEntry) error {
	ev := r.log.Info()
	if entry.Outcome == domain.OutcomeFailure {
		ev = r.log.Warn()
	}
	ev.Str("action", string(entry.Action)).
		Str("email", entry.Email).
		Str("role", entry.Role.String()).
		Str("outcome", entry.Outcome).
		Str("reason", entry.Reason).
		Time("at", entry.At).
		Msg("auth audit")
	return nil
}
