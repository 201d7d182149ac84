package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies the HS256 bearer tokens accepted by the API.
type TokenIssuer struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// Issue generates a new signed token for subject.
func (t TokenIssuer) Issue(subject string) (string, error) {
	if t.Secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.Issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.Expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.Secret))
}

// Parse validates the signature, the standard time claims and, when configured,
// the issuer, and returns the claims.
func (t TokenIssuer) Parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if t.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(t.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
