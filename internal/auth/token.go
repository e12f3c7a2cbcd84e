package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/quoteshare/quote-service/internal/domain"
)

// ClaimsVersion identifies the claim schema shared by issuer and extractor.
// Tokens carrying any other version are rejected.
const ClaimsVersion = 1

var (
	ErrSigningKeyMissing = errors.New("signing key not configured")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret, issuer string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}
}

// Claims describes JWT payload. Subject travels in the registered "sub" claim.
type Claims struct {
	Groups  []string `json:"groups"`
	Version int      `json:"ver"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the subject carrying a single group.
func (tm *TokenManager) GenerateToken(subjectID string, role domain.Role) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, ErrSigningKeyMissing
	}
	group := role.String()
	if group == "" {
		return "", time.Time{}, ErrInvalidClaims
	}

	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Groups:  []string{group},
		Version: ClaimsVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    tm.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	if len(tm.secret) == 0 {
		return nil, ErrSigningKeyMissing
	}
	opts := []jwt.ParserOption{jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired()}
	if tm.issuer != "" {
		opts = append(opts, jwt.WithIssuer(tm.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Version != ClaimsVersion {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Identity converts verified claims into a requester identity. Both the subject
// and a single known group are required.
func (c *Claims) Identity() (domain.Identity, bool) {
	if c == nil || c.Subject == "" || len(c.Groups) != 1 {
		return domain.Identity{}, false
	}
	role, ok := domain.ParseRole(c.Groups[0])
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{SubjectID: c.Subject, Role: role}, true
}
