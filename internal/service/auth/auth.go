package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore/internal/hash"
	"bookstore/internal/logging"
	"bookstore/internal/models"
	"bookstore/internal/repo"
	"bookstore/internal/tokens"
)

var (
	ErrValidation         = errors.New("validation")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RevocationList answers whether a refresh token id has been revoked.
// Tokens are stateless by design, so the default implementation always
// says no; a deny-list store can be dropped in without touching the
// token or checkout logic.
type RevocationList interface {
	Revoked(ctx context.Context, jti string) (bool, error)
}

type NoopRevocations struct{}

func (NoopRevocations) Revoked(context.Context, string) (bool, error) { return false, nil }

type Service struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Revocations   RevocationList
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *Service) revocations() RevocationList {
	if s.Revocations == nil {
		return NoopRevocations{}
	}
	return s.Revocations
}

// Issue signs a fresh access/refresh pair for the given identity.
func (s *Service) Issue(userID uint, username, role string) (*LoginResult, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	access, err := tokens.SignAccessToken(userID, username, role, accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refresh, err := tokens.SignRefreshToken(userID, username, role, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      role == "admin",
	}, nil
}

func (s *Service) Register(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register rejected", "reason", "username taken")
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
		l.Error("register failed", "error", err)
		return nil, err
	}

	return s.Issue(user.ID, user.Username, user.Role)
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login rejected", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login rejected", "reason", "bad password")
		return nil, ErrInvalidCredentials
	}

	return s.Issue(user.ID, user.Username, user.Role)
}

// Refresh verifies the refresh token and mints a new access token
// carrying the same identity claims. The refresh token itself is not
// rotated and holds no session state: it stays usable until its own
// expiry, which is the documented limitation of stateless tokens.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh rejected", "error", err)
		return "", time.Time{}, err
	}

	revoked, err := s.revocations().Revoked(ctx, claims.ID)
	if err != nil {
		l.Error("refresh failed", "error", err)
		return "", time.Time{}, err
	}
	if revoked {
		l.Warn("refresh rejected", "reason", "revoked")
		return "", time.Time{}, tokens.ErrTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", time.Time{}, err
	}

	accessExp := time.Now().Add(tokens.AccessTTL)
	access, err := tokens.SignAccessToken(userID, claims.Username, claims.Role, accessExp, s.JWTSecret)
	if err != nil {
		l.Error("refresh failed", "error", err)
		return "", time.Time{}, err
	}
	return access, accessExp, nil
}
