package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

// defaultDisplayName labels accounts provisioned without an explicit name.
const defaultDisplayName = "Operational Account"

// RoleCache caches the authoritative role per profile id so session
// validation can skip the store on the hot path. Implemented by Redis.
type RoleCache interface {
	Get(ctx context.Context, profileID string) (domain.Role, bool, error)
	Set(ctx context.Context, profileID string, role domain.Role) error
	Invalidate(ctx context.Context, profileID string) error
}

// ProvisionService creates and updates Profiles. It is the only path by which
// a profile's secret or role may change, and it is idempotent: re-running the
// same call leaves the same observable state.
type ProvisionService struct {
	repo        ports.ProfileRepository
	hasher      *CredentialHasher
	cache       RoleCache
	validate    *validator.Validate
	defaultRole domain.Role
	log         zerolog.Logger
}

// NewProvisionService returns a Provisioner. defaultRole is the documented
// configuration default applied when the input carries no role; it must be a
// member of the enum. cache may be nil when no role cache is deployed.
func NewProvisionService(
	repo ports.ProfileRepository,
	hasher *CredentialHasher,
	cache RoleCache,
	defaultRole domain.Role,
	log zerolog.Logger,
) *ProvisionService {
	return &ProvisionService{
		repo:        repo,
		hasher:      hasher,
		cache:       cache,
		validate:    validator.New(),
		defaultRole: defaultRole,
		log:         log,
	}
}

// Provision validates input, hashes the secret, and upserts the Profile.
// Validation happens entirely before the write: a rejected call never leaves
// a partial profile behind. A concurrent write conflict on the same email is
// retried exactly once before being surfaced.
func (s *ProvisionService) Provision(ctx context.Context, input ports.ProvisionInput) (*domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, &domain.InvalidArgumentError{Field: "email", Reason: "must be a well-formed address"}
	}

	roleInput := input.Role
	if roleInput == "" {
		roleInput = string(s.defaultRole)
	}
	role, err := domain.ParseRole(roleInput)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultDisplayName
	}

	hash, err := s.hasher.Hash(input.Secret)
	if err != nil {
		return nil, err
	}

	// Re-provisioning may change the role of an existing account. That is an
	// intended administrative operation, but privilege changes are worth a trace.
	if existing, findErr := s.repo.FindByEmail(ctx, email); findErr == nil && existing.Role != role {
		s.log.Warn().
			Str("email", email).
			Str("old_role", string(existing.Role)).
			Str("new_role", string(role)).
			Msg("provisioning changes role of existing profile")
	}

	fields := ports.ProfileFields{PasswordHash: hash, Name: name, Role: role}

	profile, err := s.repo.Upsert(ctx, email, fields)
	if errors.Is(err, domain.ErrConflict) {
		s.log.Warn().Str("email", email).Msg("upsert conflict, retrying once")
		profile, err = s.repo.Upsert(ctx, email, fields)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Invalidate(ctx, profile.ID); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("profile_id", profile.ID).Msg("failed to invalidate role cache")
		}
	}

	s.log.Info().
		Str("profile_id", profile.ID).
		Str("email", profile.Email).
		Str("role", string(profile.Role)).
		Msg("profile provisioned")

	return profile, nil
}
