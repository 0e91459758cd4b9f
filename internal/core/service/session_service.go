package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

const defaultLookupTimeout = 2 * time.Second

// SessionService validates client-held session tokens. It is a pure gate: it
// never mutates state, and every failure mode (missing, malformed, expired,
// unknown subject, store timeout) collapses to domain.ErrUnauthenticated so
// the caller learns nothing about account existence.
type SessionService struct {
	repo          ports.ProfileRepository
	cache         RoleCache
	jwtSecret     string
	lookupTimeout time.Duration
	log           zerolog.Logger
}

// NewSessionService returns a SessionVerifier. lookupTimeout bounds the
// subject lookup against the identity store; when it elapses the session is
// treated as invalid (fail closed, never fail open). cache may be nil.
func NewSessionService(repo ports.ProfileRepository, cache RoleCache, jwtSecret string, lookupTimeout time.Duration, log zerolog.Logger) *SessionService {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &SessionService{
		repo:          repo,
		cache:         cache,
		jwtSecret:     jwtSecret,
		lookupTimeout: lookupTimeout,
		log:           log,
	}
}

// Verify decodes and checks the token, then confirms the subject still
// resolves in the identity store. The returned role is the authoritative one
// from the store (or its cache), not whatever the client presented.
func (s *SessionService) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	profileID, _ := claims["sub"].(string)
	if profileID == "" {
		return nil, domain.ErrUnauthenticated
	}

	expiresAt := time.Time{}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expiresAt = exp.Time
	}

	role, err := s.resolveRole(ctx, profileID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Session{ProfileID: profileID, Role: role, ExpiresAt: expiresAt}, nil
}

// resolveRole returns the subject's current role, consulting the cache first
// and falling back to the store under the bounded lookup timeout.
func (s *SessionService) resolveRole(ctx context.Context, profileID string) (domain.Role, error) {
	if s.cache != nil {
		if role, ok, err := s.cache.Get(ctx, profileID); err == nil && ok {
			return role, nil
		} else if err != nil {
			s.log.Warn().Err(err).Str("profile_id", profileID).Msg("role cache lookup failed, falling back to store")
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	profile, err := s.repo.FindByID(lookupCtx, profileID)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileID, profile.Role); err != nil {
			s.log.Warn().Err(err).Str("profile_id", profileID).Msg("failed to populate role cache")
		}
	}

	return profile.Role, nil
}
