package domain

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the public profile of a console user. It never carries a secret.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Clone returns a copy of i, or nil for a nil identity.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Credential is an Identity plus the secret used for login matching.
type Credential struct {
	Identity
	Secret string `json:"-"`
}

// Verify reports whether secret matches the stored one. Secrets are compared in
// the clear unless the stored value is a bcrypt hash.
func (c Credential) Verify(secret string) bool {
	if isBcryptHash(c.Secret) {
		return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
	}
	return c.Secret == secret
}

// Public strips the secret and returns the identity alone.
func (c Credential) Public() Identity {
	return c.Identity
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
