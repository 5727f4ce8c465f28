package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies signed, expiring bearer tokens. Validity
// is determined entirely by the signature and the expiration claim; there is
// no server-side session state.
type TokenService interface {
	Issue(userID uuid.UUID, ttl time.Duration) (string, error)
	Verify(token string) (uuid.UUID, error)
}

func NewTokenService(secret []byte) TokenService {
	return &tokenService{secret: secret}
}

type tokenService struct {
	secret []byte
}

func (s *tokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().UTC().Add(ttl).Unix(),
	})
	return t.SignedString(s.secret)
}

func (s *tokenService) Verify(token string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
