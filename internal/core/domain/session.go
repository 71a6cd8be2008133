package domain

// SessionStatus represents the lifecycle state of the console session.
type SessionStatus string

const (
	StatusInitializing   SessionStatus = "initializing"
	StatusAuthenticating SessionStatus = "authenticating"
	StatusAuthenticated  SessionStatus = "authenticated"
	StatusAnonymous      SessionStatus = "anonymous"
)

// Settled reports whether s is a terminal state (authenticated or anonymous).
func (s SessionStatus) Settled() bool {
	return s == StatusAuthenticated || s == StatusAnonymous
}

// Session is the single process-wide record of who, if anyone, is signed in.
//
// Invariants: Status == StatusAuthenticated iff Identity != nil.
type Session struct {
	Status    SessionStatus `json:"status"`
	Identity  *Identity     `json:"user"`
	LastError string        `json:"error,omitempty"`
}

// NewSession returns a session in its start state.
func NewSession() Session {
	return Session{Status: StatusInitializing}
}

// IsLoading reports whether the session has not settled yet.
func (s Session) IsLoading() bool { return !s.Status.Settled() }

// IsAuthenticated reports whether an identity is signed in.
func (s Session) IsAuthenticated() bool { return s.Status == StatusAuthenticated }

// Role returns the signed-in role, or "" when anonymous.
func (s Session) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Clone returns a deep copy safe to hand to listeners.
func (s Session) Clone() Session {
	s.Identity = s.Identity.Clone()
	return s
}

// EventKind enumerates the inputs of the session state machine.
type EventKind string

const (
	EventRestored        EventKind = "restored"
	EventRestoreMissing  EventKind = "restore_missing"
	EventAuthStarted     EventKind = "auth_started"
	EventAuthSucceeded   EventKind = "auth_succeeded"
	EventAuthFailed      EventKind = "auth_failed"
	EventLoggedOut       EventKind = "logged_out"
	EventIdentityUpdated EventKind = "identity_updated"
	EventErrorCleared    EventKind = "error_cleared"
)

// Event is a single input to Transition.
//
// Identity carries the restored, authenticated or updated identity. For
// EventAuthFailed it carries the identity to fall back to (nil means anonymous)
// and Err carries the user-visible message.
type Event struct {
	Kind     EventKind
	Identity *Identity
	Err      string
}

// Transition is the session state machine. It is total: every (status, event)
// pair yields a state, and pairs with no defined effect return s unchanged.
func Transition(s Session, e Event) Session {
	switch e.Kind {
	case EventRestored:
		if s.Status != StatusInitializing {
			return s
		}
		if e.Identity == nil {
			return Session{Status: StatusAnonymous}
		}
		return Session{Status: StatusAuthenticated, Identity: e.Identity.Clone()}

	case EventRestoreMissing:
		if s.Status != StatusInitializing {
			return s
		}
		return Session{Status: StatusAnonymous}

	case EventAuthStarted:
		if s.Status == StatusInitializing {
			return s
		}
		return Session{Status: StatusAuthenticating}

	case EventAuthSucceeded:
		if s.Status == StatusInitializing || e.Identity == nil {
			return s
		}
		return Session{Status: StatusAuthenticated, Identity: e.Identity.Clone()}

	case EventAuthFailed:
		switch s.Status {
		case StatusInitializing:
			return s
		case StatusAuthenticating:
			if e.Identity != nil {
				return Session{Status: StatusAuthenticated, Identity: e.Identity.Clone(), LastError: e.Err}
			}
			return Session{Status: StatusAnonymous, LastError: e.Err}
		default:
			// A logout landed while the attempt was in flight.
			s.LastError = e.Err
			return s
		}

	case EventLoggedOut:
		if s.Status == StatusInitializing {
			return s
		}
		return Session{Status: StatusAnonymous}

	case EventIdentityUpdated:
		if s.Status != StatusAuthenticated || e.Identity == nil {
			return s
		}
		s.Identity = e.Identity.Clone()
		return s

	case EventErrorCleared:
		s.LastError = ""
		return s
	}
	return s
}
