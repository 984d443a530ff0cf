package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// Имена claims в токене портала
const (
	jwtClaimEmail = "email"
	jwtClaimRole  = "role"
	jwtClaimName  = "name"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

func withClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errNoClaims
	}
	return claims, nil
}

func GetUserEmailFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	email, ok := claims[jwtClaimEmail].(string)
	if !ok || strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimEmail)
	}
	return strings.TrimSpace(email), nil
}

// GetUserRoleFromContext returns an empty role when the token carries none.
func GetUserRoleFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", nil
	}
	role, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}
	return role, nil
}

func GetUserNameFromContext(ctx context.Context) string {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return ""
	}
	name, _ := claims[jwtClaimName].(string)
	return name
}
