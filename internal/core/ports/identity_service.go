package ports

import (
	"context"

	"github.com/farmapay/admin-api/internal/core/domain"
)

// ProvisionInput is the DTO passed from the transport layer (HTTP handler or
// CLI) to the provisioner. Role arrives as a wire string so validation happens
// in one place.
type ProvisionInput struct {
	Email  string
	Secret string
	Name   string
	Role   string
}

// Provisioner creates or updates a Profile. Provision is idempotent: calling
// it twice with the same arguments leaves the same observable state (same id,
// latest name and role, a hash verifying the latest secret).
type Provisioner interface {
	Provision(ctx context.Context, input ProvisionInput) (*domain.Profile, error)
}

// AuthService exchanges verified credentials for a signed session token.
type AuthService interface {
	Login(ctx context.Context, email, secret string) (string, *domain.Profile, error)
}

// SessionVerifier validates a client-held token and resolves the authoritative
// session. Every failure mode (missing, malformed, expired, unknown subject)
// collapses to domain.ErrUnauthenticated.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}
