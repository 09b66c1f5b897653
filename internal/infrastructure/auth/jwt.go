// Package auth verifies caller identity tokens issued by the external
// auth service. Credential issuance and password checks live there, not here.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "stockbook/internal/core/context"
)

// JWTConfig holds JWT verification configuration.
type JWTConfig struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret: secret,
		Issuer: "stockbook",
		Leeway: 30 * time.Second,
	}
}

// Claims represents the JWT claims this service understands.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
}

// JWTService verifies tokens and extracts the caller identity.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// ValidateToken validates a JWT and returns the caller's user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithLeeway(s.config.Leeway))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("token carries no user identity")
	}

	return &appctx.UserContext{
		UserID: userID,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
