package domain

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestTransition(t *testing.T) {
	alice := &Identity{ID: 1, Email: "alice@demo.com", Role: RoleAdmin}
	bob := &Identity{ID: 2, Email: "bob@demo.com", Role: RoleUser}

	initializing := NewSession()
	authenticating := Session{Status: StatusAuthenticating}
	anonymous := Session{Status: StatusAnonymous}
	signedIn := Session{Status: StatusAuthenticated, Identity: alice}

	cases := []struct {
		name string
		from Session
		ev   Event
		want Session
	}{
		{"restore", initializing, Event{Kind: EventRestored, Identity: alice}, signedIn},
		{"restore without identity", initializing, Event{Kind: EventRestored}, anonymous},
		{"restore missing", initializing, Event{Kind: EventRestoreMissing}, anonymous},
		{"restore after settle is ignored", anonymous, Event{Kind: EventRestored, Identity: alice}, anonymous},
		{"attempt before restore is ignored", initializing, Event{Kind: EventAuthStarted}, initializing},
		{"attempt from anonymous", anonymous, Event{Kind: EventAuthStarted}, authenticating},
		{"attempt from signed in", signedIn, Event{Kind: EventAuthStarted}, authenticating},
		{"success", authenticating, Event{Kind: EventAuthSucceeded, Identity: bob}, Session{Status: StatusAuthenticated, Identity: bob}},
		{"failure falls back to anonymous", authenticating, Event{Kind: EventAuthFailed, Err: "nope"}, Session{Status: StatusAnonymous, LastError: "nope"}},
		{"failure restores prior identity", authenticating, Event{Kind: EventAuthFailed, Identity: alice, Err: "nope"}, Session{Status: StatusAuthenticated, Identity: alice, LastError: "nope"}},
		{"failure after logout keeps anonymous", anonymous, Event{Kind: EventAuthFailed, Identity: alice, Err: "nope"}, Session{Status: StatusAnonymous, LastError: "nope"}},
		{"logout", signedIn, Event{Kind: EventLoggedOut}, anonymous},
		{"logout mid attempt", authenticating, Event{Kind: EventLoggedOut}, anonymous},
		{"logout before restore is ignored", initializing, Event{Kind: EventLoggedOut}, initializing},
		{"update identity", signedIn, Event{Kind: EventIdentityUpdated, Identity: bob}, Session{Status: StatusAuthenticated, Identity: bob}},
		{"update identity while anonymous", anonymous, Event{Kind: EventIdentityUpdated, Identity: bob}, anonymous},
		{"clear error", Session{Status: StatusAnonymous, LastError: "x"}, Event{Kind: EventErrorCleared}, anonymous},
		{"unknown event", signedIn, Event{Kind: "bogus"}, signedIn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Transition(tc.from, tc.ev)
			if got.Status != tc.want.Status || got.LastError != tc.want.LastError {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if (got.Identity == nil) != (tc.want.Identity == nil) {
				t.Fatalf("identity presence mismatch: got %+v, want %+v", got.Identity, tc.want.Identity)
			}
			if got.Identity != nil && *got.Identity != *tc.want.Identity {
				t.Fatalf("identity mismatch: got %+v, want %+v", *got.Identity, *tc.want.Identity)
			}
			if got.IsAuthenticated() != (got.Identity != nil) {
				t.Fatalf("authenticated status must coincide with a present identity: %+v", got)
			}
		})
	}
}

func TestTransition_DoesNotAlias(t *testing.T) {
	id := &Identity{ID: 1, Name: "before"}
	s := Transition(Session{Status: StatusAuthenticating}, Event{Kind: EventAuthSucceeded, Identity: id})

	id.Name = "after"
	if s.Identity.Name != "before" {
		t.Fatalf("session shares identity with event")
	}
}

func TestSession_Loading(t *testing.T) {
	if !NewSession().IsLoading() || !(Session{Status: StatusAuthenticating}).IsLoading() {
		t.Fatalf("expected unsettled sessions to be loading")
	}
	if (Session{Status: StatusAnonymous}).IsLoading() {
		t.Fatalf("anonymous is settled")
	}
	if (Session{Status: StatusAnonymous}).Role() != "" {
		t.Fatalf("anonymous has no role")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("manager"); err != nil || r != RoleManager {
		t.Fatalf("got %q, %v", r, err)
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestCredential_Verify(t *testing.T) {
	plain := Credential{Secret: "admin123"}
	if !plain.Verify("admin123") || plain.Verify("admin12") || plain.Verify("") {
		t.Fatalf("plaintext verification wrong")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hashed := Credential{Secret: string(hash)}
	if !hashed.Verify("s3cret") || hashed.Verify(string(hash)) {
		t.Fatalf("bcrypt verification wrong")
	}
}

func TestMenuTable_UnknownRole(t *testing.T) {
	if MenuTable("guest") != nil {
		t.Fatalf("expected nil menu for unknown role")
	}
}
