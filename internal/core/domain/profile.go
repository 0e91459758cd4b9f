package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of privilege levels an identity can hold.
// Wire values are upper-case and must round-trip unchanged between
// provisioning input, storage, and capability resolution.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleSales     Role = "SALES"
	RoleAttendant Role = "ATTENDANT"
	RoleInvestor  Role = "INVESTOR"
)

// AllRoles lists every member of the Role enum.
var AllRoles = []Role{RoleAdmin, RoleManager, RoleSales, RoleAttendant, RoleInvestor}

// ParseRole converts a wire string into a Role. The comparison is exact:
// casing is part of the wire contract.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if s == string(r) {
			return r, nil
		}
	}
	return "", &InvalidArgumentError{Field: "role", Reason: fmt.Sprintf("unknown role %q", s)}
}

var ErrProfileNotFound = errors.New("profile not found")
var ErrConflict = errors.New("conflicting concurrent write")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakSecret = errors.New("secret does not meet minimum strength")
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrUnauthorized = errors.New("unauthorized")

// InvalidArgumentError reports a field-level validation failure. It is
// always raised before any side effect; no partial Profile is ever written.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Profile is the persisted identity record. Exactly one Profile exists per
// email at any time; the id is generated at creation and never changes.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
