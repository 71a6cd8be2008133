package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

// DefaultAuthLatency is the simulated round trip applied to login and registration.
const DefaultAuthLatency = time.Second

// SessionService owns the single console session. Construct it once at startup,
// call Initialize, and pass it to whatever needs the session.
type SessionService struct {
	creds   ports.CredentialStore
	persist ports.SessionPersistence
	tokens  ports.TokenIssuer
	audit   ports.AuditSink
	latency time.Duration
	log     zerolog.Logger
	now     func() time.Time

	// attemptMu serialises login and registration so at most one attempt
	// applies its result at a time.
	attemptMu sync.Mutex

	// mu guards state, token and initialized. Persistence writes happen under
	// mu so memory and storage never diverge.
	mu          sync.RWMutex
	state       domain.Session
	token       string
	initialized bool

	// notifyMu orders listener delivery; it is acquired before mu is released.
	notifyMu     sync.Mutex
	listenersMu  sync.Mutex
	listeners    map[int]func(domain.Session)
	nextListener int

	lastID atomic.Int64
}

// NewSessionService returns a SessionService in the initializing state.
// audit may be nil; latency <= 0 disables the simulated delay.
func NewSessionService(
	creds ports.CredentialStore,
	persist ports.SessionPersistence,
	tokens ports.TokenIssuer,
	audit ports.AuditSink,
	latency time.Duration,
	log zerolog.Logger,
) *SessionService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &SessionService{
		creds:     creds,
		persist:   persist,
		tokens:    tokens,
		audit:     audit,
		latency:   latency,
		log:       log,
		now:       time.Now,
		state:     domain.NewSession(),
		listeners: make(map[int]func(domain.Session)),
	}
}

// Initialize restores the persisted session, if any, and settles the state.
// The stored token is trusted without re-validation. Only the first call has an effect.
func (s *SessionService) Initialize(ctx context.Context) {
	if s == nil {
		panic(domain.ErrNotInitialized)
	}

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		s.log.Debug().Msg("session already initialized")
		return
	}
	s.initialized = true

	ev := domain.Event{Kind: domain.EventRestoreMissing}
	rec, ok := s.persist.Load(ctx)
	if ok {
		s.token = rec.Token
		ev = domain.Event{Kind: domain.EventRestored, Identity: &rec.Identity}
	}
	snap := s.commitAndUnlock(ev)

	if ok {
		s.record(domain.AuditRestore, rec.Identity.Email, rec.Identity.Role, nil)
	}
	s.log.Info().Str("status", string(snap.Status)).Msg("session initialized")
}

// Snapshot returns a copy of the current session. It is safe before Initialize.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every state change, in
// change order. fn must not call mutating SessionService methods synchronously.
func (s *SessionService) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// Login authenticates email/secret against the credential store.
func (s *SessionService) Login(ctx context.Context, email, secret string) ports.AuthResult {
	s.mustBeInitialized()
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	prior := s.begin()
	if err := s.wait(ctx); err != nil {
		return s.fail(domain.AuditLogin, email, prior, err)
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrCredentialNotFound) {
			s.log.Warn().Err(err).Str("email", email).Msg("credential lookup failed")
		}
		return s.fail(domain.AuditLogin, email, prior, domain.ErrInvalidCredentials)
	}
	if !cred.Verify(secret) {
		return s.fail(domain.AuditLogin, email, prior, domain.ErrInvalidCredentials)
	}

	return s.succeed(ctx, domain.AuditLogin, cred.Public(), prior)
}

// Register creates a new identity with the default role and signs it in.
// Registered identities live only in the session; the credential store is not written.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) ports.AuthResult {
	s.mustBeInitialized()
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	prior := s.begin()
	if err := s.wait(ctx); err != nil {
		return s.fail(domain.AuditRegister, in.Email, prior, err)
	}

	_, err := s.creds.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return s.fail(domain.AuditRegister, in.Email, prior, domain.ErrEmailAlreadyExists)
	case !errors.Is(err, domain.ErrCredentialNotFound):
		s.log.Warn().Err(err).Str("email", in.Email).Msg("credential lookup failed, registering anyway")
	}

	identity := domain.Identity{
		ID:        s.nextID(),
		Email:     in.Email,
		Name:      in.Name,
		Role:      domain.DefaultRole,
		AvatarURL: PlaceholderAvatar(in.Name),
		Phone:     in.Phone,
	}
	return s.succeed(ctx, domain.AuditRegister, identity, prior)
}

// Logout erases the persisted session and returns to anonymous.
func (s *SessionService) Logout(ctx context.Context) {
	s.mustBeInitialized()

	s.mu.Lock()
	var email string
	var role domain.Role
	if s.state.Identity != nil {
		email, role = s.state.Identity.Email, s.state.Identity.Role
	}
	s.persist.Clear(context.WithoutCancel(ctx))
	s.token = ""
	s.commitAndUnlock(domain.Event{Kind: domain.EventLoggedOut})

	if email != "" {
		s.record(domain.AuditLogout, email, role, nil)
	}
}

// UpdateIdentity replaces the signed-in identity in memory and storage. The
// caller is trusted: no role re-validation happens. Outside the authenticated
// state the call is ignored.
func (s *SessionService) UpdateIdentity(ctx context.Context, identity domain.Identity) {
	s.mustBeInitialized()

	s.mu.Lock()
	if s.state.Status != domain.StatusAuthenticated {
		status := s.state.Status
		s.mu.Unlock()
		s.log.Debug().Str("status", string(status)).Msg("identity update ignored")
		return
	}
	s.persist.Save(context.WithoutCancel(ctx), s.token, identity)
	s.commitAndUnlock(domain.Event{Kind: domain.EventIdentityUpdated, Identity: &identity})

	s.record(domain.AuditUpdate, identity.Email, identity.Role, nil)
}

// ClearError drops the last error. It is idempotent.
func (s *SessionService) ClearError() {
	s.mustBeInitialized()

	s.mu.Lock()
	if s.state.LastError == "" {
		s.mu.Unlock()
		return
	}
	s.commitAndUnlock(domain.Event{Kind: domain.EventErrorCleared})
}

// begin enters authenticating and returns the identity to fall back to on failure.
func (s *SessionService) begin() *domain.Identity {
	s.mu.Lock()
	var prior *domain.Identity
	if s.state.Status == domain.StatusAuthenticated {
		prior = s.state.Identity.Clone()
	}
	s.commitAndUnlock(domain.Event{Kind: domain.EventAuthStarted})
	return prior
}

func (s *SessionService) succeed(ctx context.Context, action domain.AuditAction, identity domain.Identity, prior *domain.Identity) ports.AuthResult {
	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", identity.ID).Msg("token issue failed")
		return s.fail(action, identity.Email, prior, fmt.Errorf("issue token: %w", err))
	}

	s.mu.Lock()
	s.persist.Save(context.WithoutCancel(ctx), token, identity)
	s.token = token
	s.commitAndUnlock(domain.Event{Kind: domain.EventAuthSucceeded, Identity: &identity})

	s.record(action, identity.Email, identity.Role, nil)
	s.log.Info().Str("action", string(action)).Str("email", identity.Email).Str("role", string(identity.Role)).Msg("signed in")

	return ports.AuthResult{OK: true, Token: token}
}

func (s *SessionService) fail(action domain.AuditAction, email string, prior *domain.Identity, err error) ports.AuthResult {
	s.mu.Lock()
	s.commitAndUnlock(domain.Event{Kind: domain.EventAuthFailed, Identity: prior, Err: err.Error()})

	var role domain.Role
	if prior != nil {
		role = prior.Role
	}
	s.record(action, email, role, err)
	s.log.Info().Str("action", string(action)).Str("email", email).Err(err).Msg("sign-in failed")

	return ports.AuthResult{Error: err.Error(), Err: err}
}

// commitAndUnlock applies ev to the state, releases mu, and delivers the new
// snapshot to listeners. The caller must hold mu.
func (s *SessionService) commitAndUnlock(ev domain.Event) domain.Session {
	from := s.state.Status
	s.state = domain.Transition(s.state, ev)
	snap := s.state.Clone()

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.log.Debug().
		Str("event", string(ev.Kind)).
		Str("from", string(from)).
		Str("to", string(snap.Status)).
		Msg("session transition")

	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(domain.Session), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
	return snap
}

func (s *SessionService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// nextID returns a time-derived identity id, strictly increasing per process.
func (s *SessionService) nextID() int64 {
	for {
		last := s.lastID.Load()
		id := s.now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		if s.lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}

func (s *SessionService) record(action domain.AuditAction, email string, role domain.Role, err error) {
	entry := domain.AuditEntry{
		Action:  action,
		Email:   email,
		Role:    role,
		Outcome: domain.OutcomeSuccess,
		At:      s.now().UTC(),
	}
	if err != nil {
		entry.Outcome = domain.OutcomeFailure
		entry.Reason = err.Error()
	}
	s.audit.Record(entry)
}

func (s *SessionService) mustBeInitialized() {
	if s == nil {
		panic(domain.ErrNotInitialized)
	}
	s.mu.RLock()
	ok := s.initialized
	s.mu.RUnlock()
	if !ok {
		panic(domain.ErrNotInitialized)
	}
}

// PlaceholderAvatar derives an initials avatar URL from a display name.
func PlaceholderAvatar(name string) string {
	q := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + q + "&background=3b82f6&color=fff"
}

type discardAudit struct{}

func (discardAudit) Record(domain.AuditEntry) {}
