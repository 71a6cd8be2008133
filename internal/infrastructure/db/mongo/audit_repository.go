package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on the auth_audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert persists one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	entry.At = entry.At.UTC()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
