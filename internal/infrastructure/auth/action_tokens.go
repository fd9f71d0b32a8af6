package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

var errWrongPurpose = errors.New("token issued for another purpose")

// ActionTokenSigner implements ports.ActionTokenSigner with HS256 JWTs. The subject is the
// account email; the purpose claim keeps a confirmation token from resetting a password.
type ActionTokenSigner struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type actionClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

func NewActionTokenSigner(secret []byte, issuer string) *ActionTokenSigner {
	return &ActionTokenSigner{secret: secret, issuer: issuer, now: time.Now}
}

func (s *ActionTokenSigner) Issue(purpose, subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := actionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *ActionTokenSigner) Validate(purpose, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &actionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*actionClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Purpose != purpose {
		return "", errWrongPurpose
	}
	return claims.Subject, nil
}

// Ensure ActionTokenSigner implements ports.ActionTokenSigner.
var _ ports.ActionTokenSigner = (*ActionTokenSigner)(nil)
