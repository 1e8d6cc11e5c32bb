package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalid covers malformed tokens and bad signatures.
	ErrInvalid = errors.New("token is invalid")
	// ErrExpired covers tokens past their expiry window.
	ErrExpired = errors.New("token has expired")
)

// Info is the verified content of a bearer token.
type Info struct {
	Subject  uuid.UUID
	IssuedAt time.Time
}

// JWTManager signs and verifies stateless HS256 bearer tokens. Validity
// derives entirely from the signature and expiry, never from a store.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token for the given subject with iat=now and exp=now+expiry.
func (m *JWTManager) Issue(subjectID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the subject identity
// and issuance time. Expired tokens fail with ErrExpired, everything else
// with ErrInvalid.
func (m *JWTManager) Verify(tokenString string) (*Info, error) {
	var claims jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !token.Valid {
		return nil, ErrInvalid
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalid
	}
	if claims.IssuedAt == nil {
		return nil, ErrInvalid
	}

	return &Info{Subject: subject, IssuedAt: claims.IssuedAt.Time}, nil
}
