package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// OpaqueTokenIssuer issues demo tokens of the form
// console-token-<user id>-<unix ms>-<sequence>. They are unique per process
// but carry no cryptographic guarantee.
type OpaqueTokenIssuer struct {
	seq atomic.Uint64
	now func() time.Time
}

func NewOpaqueTokenIssuer() *OpaqueTokenIssuer {
	return &OpaqueTokenIssuer{now: time.Now}
}

func (i *OpaqueTokenIssuer) Issue(identity domain.Identity) (string, error) {
	n := i.seq.Add(1)
	return fmt.Sprintf("console-token-%d-%d-%d", identity.ID, i.now().UnixMilli(), n), nil
}

// SignedTokenIssuer issues HS256 JWTs with a random jti. The session never
// verifies them; the signature only lets downstream services check provenance.
type SignedTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var errEmptyTokenSecret = errors.New("token secret is required")

func NewSignedTokenIssuer(secret string, ttl time.Duration) (*SignedTokenIssuer, error) {
	if secret == "" {
		return nil, errEmptyTokenSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *SignedTokenIssuer) Issue(identity domain.Identity) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(identity.ID, 10),
		"email": identity.Email,
		"role":  string(identity.Role),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}
