package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong secret.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyExists is returned when registering an email the credential store knows.
	ErrEmailAlreadyExists = errors.New("email address is already in use")
	// ErrStorageUnavailable marks a durable storage failure. It is logged, never surfaced to users.
	ErrStorageUnavailable = errors.New("session storage unavailable")
	// ErrCredentialNotFound is returned by credential stores for an unknown email.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrKeyNotFound is returned by key-value stores for an absent key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrUnknownRole is returned when a role string is outside the closed set.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNotInitialized is the panic value for session operations invoked before Initialize.
	ErrNotInitialized = errors.New("session used before initialization")
)
