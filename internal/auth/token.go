// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/models"
)

// ErrInvalidToken is returned for malformed, expired or forged tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload; Subject carries the user id
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenManager signs and verifies HS256 tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenManager creates a TokenManager from auth configuration
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue creates a signed token for the user and returns it with its expiry
func (m *TokenManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Role: user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the token signature and expiry and returns its claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if m.issuer != "" && !claims.VerifyIssuer(m.issuer, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
