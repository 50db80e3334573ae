package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenKind discriminates access tokens from refresh tokens. A token of one
// kind is never accepted where the other is expected.
type TokenKind string

const (
	// TokenKindAccess is the short-lived credential for API calls.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived credential used solely to mint new
	// token pairs.
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrInvalidSubject is returned when a token is issued for an empty subject.
	ErrInvalidSubject = errors.New("token subject is empty")
	// ErrTokenInvalid is returned on signature failure, malformed structure or expiry.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenKindMismatch is returned when a token's kind discriminator does
	// not match the expected kind.
	ErrTokenKindMismatch = errors.New("token kind mismatch")
)

// Claims represents JWT claims carrying the kind discriminator.
type Claims struct {
	Kind TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed, time-bounded tokens.
type JWTService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a token service. algorithm must name an HMAC signing
// method (HS256, HS384 or HS512); anything unknown falls back to HS256.
func NewJWTService(secret, algorithm string, accessTTL, refreshTTL time.Duration) *JWTService {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &JWTService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue produces a signed token binding subject for the given kind and TTL.
// Every token carries a fresh jti so two tokens issued in the same instant for
// the same subject are never byte-identical.
func (s *JWTService) Issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrInvalidSubject
	}

	now := time.Now()
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IssueAccessToken issues an access token with the configured TTL.
func (s *JWTService) IssueAccessToken(subject string) (string, error) {
	return s.Issue(subject, TokenKindAccess, s.accessTTL)
}

// IssueRefreshToken issues a refresh token with the configured TTL.
func (s *JWTService) IssueRefreshToken(subject string) (string, error) {
	return s.Issue(subject, TokenKindRefresh, s.refreshTTL)
}

// Verify validates a token and returns its subject. It fails with
// ErrTokenInvalid on signature failure, malformed structure or expiry, and
// with ErrTokenKindMismatch when the kind discriminator does not match
// expected (a refresh token is never usable as an access token, nor the other
// way around).
func (s *JWTService) Verify(tokenString string, expected TokenKind) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	if claims.Kind != expected {
		return "", ErrTokenKindMismatch
	}
	return claims.Subject, nil
}
