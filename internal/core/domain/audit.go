package domain

import "time"

// AuditAction names a session lifecycle operation.
type AuditAction string

const (
	AuditLogin    AuditAction = "login"
	AuditRegister AuditAction = "register"
	AuditLogout   AuditAction = "logout"
	AuditUpdate   AuditAction = "update_identity"
	AuditRestore  AuditAction = "restore"
)

// AuditEntry records one session lifecycle event.
type AuditEntry struct {
	Action  AuditAction `json:"action" bson:"action"`
	Email   string      `json:"email" bson:"email"`
	Role    Role        `json:"role,omitempty" bson:"role,omitempty"`
	Outcome string      `json:"outcome" bson:"outcome"`
	Reason  string      `json:"reason,omitempty" bson:"reason,omitempty"`
	At      time.Time   `json:"at" bson:"at"`
}

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
