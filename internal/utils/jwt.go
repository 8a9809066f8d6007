package utils // package utils provides password hashing and session token helpers

import (
	"errors" // sentinel errors and errors.Is
	"time"   // token expiry

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token verification failures.  Callers at the HTTP boundary collapse all of
// them into one generic 401; they are distinct here so that tests and logs
// can tell them apart.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// AccessToken is a signed session token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenService issues and verifies HS256 session tokens.  The secret and TTL
// are fixed for the lifetime of the service; verification is stateless.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with secret.  Tokens expire
// ttl after issuance.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token whose subject is userID.  Expiry is second-granular,
// as in the JWT NumericDate encoding.
func (s *TokenService) Issue(userID string) (AccessToken, error) {
	iat := s.now().UTC().Truncate(time.Second)
	exp := iat.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify checks the token's signature and expiry and returns its subject.
func (s *TokenService) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", classify(err)
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

// classify maps jwt parse errors onto the package sentinels.  A token signed
// with an unexpected algorithm is treated like a bad signature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}
