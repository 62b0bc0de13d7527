package auth

import (
	"errors"
	"strconv"

	"github.com/crucial707/todo-api/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

func (s *Service) issue(userID int) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString(s.secret)
}

// Authenticate validates a bearer token and returns the user id in its subject.
func (s *Service) Authenticate(tokenStr string) (int, error) {
	if tokenStr == "" {
		return 0, apperr.Auth("Missing token", nil)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.Auth("Token has expired", err)
		}
		return 0, apperr.Auth("Invalid token", err)
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, apperr.Auth("Invalid token", err)
	}
	return id, nil
}
