package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/staffhub/staffhub/internal/events"
	"github.com/staffhub/staffhub/internal/hash"
	"github.com/staffhub/staffhub/internal/logging"
	"github.com/staffhub/staffhub/internal/models"
	"github.com/staffhub/staffhub/internal/repo"
	"github.com/staffhub/staffhub/internal/tokens"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Issuer
	Events *events.Producer
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password, contactNumber string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:      username,
		PasswordHash:  pwHash,
		Role:          "user",
		ContactNumber: contactNumber,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_failed", "reason", "username taken", "username", username)
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, username, map[string]any{
		"type": "user.registered", "user_id": user.ID, "username": username,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return &user, nil
}

// Login deliberately collapses "no such user" and "wrong password" into
// one Unauthorized so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "user not found")
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, username, map[string]any{
		"type": "user.login", "user_id": user.ID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("login_success", "user_id", user.ID)
	return pair, nil
}

// Logout clears the stored refresh token. Calling it twice is not an error.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	if err := s.Repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		l.Error("logout_failed", "error", err)
		return err
	}

	if err := s.Events.Publish(ctx, strconv.FormatUint(uint64(userID), 10), map[string]any{
		"type": "user.logout", "user_id": userID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("logout_success")
	return nil
}

// Refresh exchanges a refresh token for a fresh pair. Refresh tokens are
// single-use: the store holds only the last issued token per user, and the
// new token overwrites it. Every failure cause (missing token, bad
// signature, expiry, superseded token, subject mismatch) is reported to the
// caller as the same opaque Unauthorized; the cause is only logged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	fail := func(reason string, err error) (*TokenPair, error) {
		l.Warn("refresh_failed", "reason", reason, "error", err)
		return nil, fmt.Errorf("%w: could not refresh tokens", ErrUnauthorized)
	}

	if refreshToken == "" {
		return fail("empty token", nil)
	}

	claims, err := s.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		return fail("token verification failed", err)
	}

	// The store is the source of truth for the current session: a token
	// that verifies but was already rotated out must not be accepted.
	user, err := s.Repo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail("token not current", nil)
		}
		return fail("store lookup failed", err)
	}

	if strconv.FormatUint(uint64(user.ID), 10) != claims.Subject {
		return fail("subject mismatch", nil)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return fail("issuing new pair failed", err)
	}

	l.Info("refresh_success", "user_id", user.ID)
	return pair, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	sub := strconv.FormatUint(uint64(user.ID), 10)

	accessToken, accessExp, err := s.Tokens.IssueAccess(sub, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := s.Tokens.IssueRefresh(sub, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	// Overwriting is the rotation point: the previous refresh token stops
	// being current the moment this statement commits.
	if err := s.Repo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
