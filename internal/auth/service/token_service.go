package service

import (
	"fmt"
	"time"

	"karkhana/internal/config"
	"karkhana/internal/domain"
	apperrors "karkhana/internal/errors"

	"github.com/golang-jwt/jwt"
)

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

func (s *TokenService) Issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   float64(user.ID),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a bearer token, returning the principal
// claims it carries. Expired or tampered tokens map to an unauthorized
// error, never an internal one.
func (s *TokenService) Verify(tokenStr string) (uint, string, string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, "", "", apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", "", apperrors.NewUnauthorizedError("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", "", apperrors.NewUnauthorizedError("invalid token subject")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return uint(sub), email, role, nil
}
