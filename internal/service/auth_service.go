package service

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

// Claims are the JWT claims carried by access tokens. UserID is the
// already-authenticated owner identifier handed to the rest of the system.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthService issues and validates access tokens. The core performs no
// credential verification; identity is established upstream.
type AuthService interface {
	IssueAccessToken(ctx context.Context, userID string) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*Claims, error)
}

type authService struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg *config.Config) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return &authService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    cfg.Auth.AccessTokenTTL,
	}, nil
}

func (s *authService) IssueAccessToken(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateJWT(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("invalid token: %v", err))
	}
	if !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}
	if claims.TokenType != accessTokenType {
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("invalid token type: %s", claims.TokenType))
	}
	return claims, nil
}
