package ports

import (
	"context"

	"github.com/farmapay/admin-api/internal/core/domain"
)

// ProfileFields carries the mutable fields written by an upsert. The id and
// email are never part of the payload: the id is generated on first write and
// immutable afterwards, the email is the lookup key.
type ProfileFields struct {
	PasswordHash string
	Name         string
	Role         domain.Role
}

// ProfileRepository is the identity store. Upsert is the single write
// primitive: it creates the Profile with a fresh id when email is unknown and
// overwrites exactly the supplied fields when it exists. A concurrent
// conflicting write on the same email surfaces as domain.ErrConflict.
type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Upsert(ctx context.Context, email string, fields ProfileFields) (*domain.Profile, error)
}
