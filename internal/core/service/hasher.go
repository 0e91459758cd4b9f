package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/farmapay/admin-api/internal/core/domain"
)

// minSecretLength is the minimum accepted secret length. Anything shorter is
// rejected before any hashing work happens.
const minSecretLength = 8

// CredentialHasher performs one-way salted hashing of account secrets using
// bcrypt. The work factor is embedded in every hash it produces, so
// verification keeps working after a global cost change.
type CredentialHasher struct {
	cost int
}

// NewCredentialHasher returns a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewCredentialHasher(cost int) *CredentialHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialHasher{cost: cost}
}

// Hash derives a salted hash from secret. Weak secrets are rejected with
// domain.ErrWeakSecret before any work is done.
func (h *CredentialHasher) Hash(secret string) (string, error) {
	if len(secret) < minSecretLength {
		return "", domain.ErrWeakSecret
	}
	out, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether secret matches hash. It never returns an error on
// mismatch; a malformed hash also verifies as false.
func (h *CredentialHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
