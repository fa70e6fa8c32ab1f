package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService проверяет токены администраторов, выпущенные внешним сервисом идентификации
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService создает новый экземпляр AuthService
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
	}
}

// GenerateJWT выпускает токен HS256 для subject, используется в тестах и служебных утилитах
func (a *AuthService) GenerateJWT(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateJWT проверяет подпись и срок действия токена и возвращает subject
func (a *AuthService) ValidateJWT(tokenString string) (string, error) {
	if len(a.jwtSecret) == 0 {
		return "", fmt.Errorf("%w: verification key is not configured", ErrInvalidToken)
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: subject not found in token", ErrInvalidToken)
	}

	return claims.Subject, nil
}
