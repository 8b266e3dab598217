package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-storefront/internal/domains/auth/client"
	"bookstore-storefront/internal/domains/auth/model"
	"bookstore-storefront/internal/domains/auth/repository"
	"bookstore-storefront/pkg/jwt"
	"bookstore-storefront/pkg/logger"
)

type authService struct {
	client     client.Client
	repo       repository.RepositoryInterface
	jwt        *jwt.Manager
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(c client.Client, r repository.RepositoryInterface, m *jwt.Manager, sessionTTL time.Duration) ServiceInterface {
	if sessionTTL <= 0 {
		sessionTTL = model.DefaultSessionTTL
	}
	return &authService{
		client:     c,
		repo:       r,
		jwt:        m,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *authService) Login(ctx context.Context, sessionID string, req model.LoginRequest) (*model.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, model.ErrSessionRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. AUTHENTICATE AGAINST THE AUTH SERVICE
	res, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. VERIFY THE ISSUED TOKEN
	claims, err := s.jwt.ValidateAccessToken(res.AccessToken)
	if err != nil {
		logger.Warn("auth service returned an unverifiable token", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if res.User.ID != "" && res.User.ID != claims.UserID {
		return nil, fmt.Errorf("%w: token subject does not match user", model.ErrInvalidToken)
	}

	// 3. BIND TO THE BROWSING SESSION
	now := s.now()
	session := model.Session{
		SessionID:  sessionID,
		UserID:     claims.UserID,
		Email:      firstNonEmpty(claims.Email, res.User.Email),
		Name:       firstNonEmpty(res.User.FullName, claims.Name),
		Role:       firstNonEmpty(claims.Role, res.User.Role),
		LoggedInAt: now,
	}
	ttl := s.sessionTTL
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
		if untilExpiry := claims.ExpiresAt.Sub(now); untilExpiry < ttl {
			ttl = untilExpiry
		}
	}

	if err := s.repo.Save(ctx, session, ttl); err != nil {
		return nil, err
	}

	logger.Info("user logged in", map[string]interface{}{
		"session_id": sessionID,
		"user_id":    session.UserID,
	})
	return &session, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.repo.Delete(ctx, sessionID)
}

func (s *authService) Current(ctx context.Context, sessionID string) model.Session {
	if strings.TrimSpace(sessionID) == "" {
		return model.Session{}
	}

	session, err := s.repo.Load(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrSessionMiss):
		return model.Session{}
	default:
		logger.Warn("auth session lookup failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return model.Session{}
	}

	if session.Expired(s.now()) {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			logger.Debug("expired auth session not deleted", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		return model.Session{}
	}
	return *session
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
