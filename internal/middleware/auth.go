package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bookstore/internal/tokens"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

type Auth struct {
	JWTSecret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{JWTSecret: secret}
}

// BearerToken extracts the access token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", tokens.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", tokens.ErrTokenInvalid
	}
	return parts[1], nil
}

func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuth(next, "")
}

func (m *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuth(next, "admin")
}

func (m *Auth) requireAuth(next echo.HandlerFunc, requiredRole string) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := BearerToken(c)
		if err != nil {
			return unauthenticated(err)
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return unauthenticated(err)
		}

		userID, err := claims.UserID()
		if err != nil {
			return unauthenticated(err)
		}

		if requiredRole != "" && claims.Role != requiredRole {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		return next(c)
	}
}

func unauthenticated(err error) error {
	switch {
	case errors.Is(err, tokens.ErrTokenMissing):
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	case errors.Is(err, tokens.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
}

// UserID reads the authenticated caller id set by RequireAuth.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(CtxUserID).(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}
