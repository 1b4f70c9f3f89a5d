package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jjss-seva/registration-service/internal/cache"
)

type authService struct {
	cache      *cache.Manager
	password   string
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService creates the admin session service. Sessions live in
// Redis so restarts and multiple instances agree on validity.
func NewAuthService(cacheManager *cache.Manager, password string, sessionTTL time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		cache:      cacheManager,
		password:   password,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *authService) Login(ctx context.Context, password string) (*SessionResponse, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.logger.Warn("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)

	if err := s.cache.Session.SetString(ctx, token, "1", s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Admin session created", "expires_at", expiresAt)

	return &SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Session.Delete(ctx, token); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	_, err := s.cache.Session.GetString(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	return nil
}
