package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

// AuthService exchanges verified credentials for a signed session token.
type AuthService struct {
	repo      ports.ProfileRepository
	hasher    *CredentialHasher
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.ProfileRepository, hasher *CredentialHasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, hasher: hasher, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies email and secret against the stored profile and mints a
// session token. Unknown email and wrong secret both map to
// domain.ErrInvalidCredentials, so a caller cannot probe account existence.
func (s *AuthService) Login(ctx context.Context, email, secret string) (string, *domain.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || secret == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(secret, profile.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(profile)
	if err != nil {
		return "", nil, err
	}

	return token, profile, nil
}

func (s *AuthService) mintToken(profile *domain.Profile) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  profile.ID,
		"role": string(profile.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
