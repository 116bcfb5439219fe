// Package token mints and verifies the stateless session token that both
// tiers trust instead of a shared session store.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yaleims/api/internal/shared"
)

// Claims is the identity and role snapshot taken at mint time. Role Store
// mutations after issuance do not update tokens already in the wild; holders
// keep their stale snapshot until next login.
type Claims struct {
	NetID         string   `json:"netid"`
	Email         string   `json:"email"`
	Role          string   `json:"role,omitempty"`
	MRoles        []string `json:"mRoles,omitempty"`
	Username      string   `json:"username,omitempty"`
	College       string   `json:"college,omitempty"`
	Points        int      `json:"points"`
	MatchesPlayed int      `json:"matchesPlayed"`
	jwt.RegisteredClaims
}

// Issuer mints signed session tokens. Only the session issuance path holds
// one; every other component verifies.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer constructs an Issuer. An empty secret is tolerated here and
// reported on Mint so callers surface it as a server configuration failure.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Mint signs the claims snapshot with a bounded expiry and a fresh token ID.
func (i *Issuer) Mint(claims Claims) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%w: token secret", shared.ErrConfiguration)
	}
	now := i.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Result is the outcome of verifying a presented token. LoggedIn false is a
// normal state, not an error. Purge means a token was presented but is
// unusable and the cookie should be cleared so the browser stops resending
// a dead credential.
type Result struct {
	LoggedIn bool
	Claims   *Claims
	Purge    bool
}

// Verifier statelessly validates presented tokens. It performs no I/O.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier constructs a Verifier.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify decodes a raw token into typed claims. Every cryptographic or
// shape failure degrades to the anonymous result; the only error returned
// is the unconfigured-secret case, which is a server fault rather than a
// property of the request.
func (v *Verifier) Verify(raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}, nil
	}
	if len(v.secret) == 0 {
		return Result{}, fmt.Errorf("%w: token secret", shared.ErrConfiguration)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Result{Purge: true}, nil
	}
	if err := validateShape(&claims); err != nil {
		return Result{Purge: true}, nil
	}
	return Result{LoggedIn: true, Claims: &claims}, nil
}

// validateShape rejects tokens whose payload does not carry the required
// fields. Signature checks alone do not guarantee a usable principal.
func validateShape(claims *Claims) error {
	if strings.TrimSpace(claims.NetID) == "" {
		return errors.New("netid missing")
	}
	if strings.TrimSpace(claims.Email) == "" {
		return errors.New("email missing")
	}
	if claims.ExpiresAt == nil {
		return errors.New("expiry missing")
	}
	return nil
}
