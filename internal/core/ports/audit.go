package ports

import (
	"context"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// AuditSink accepts audit entries without blocking the caller.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}
