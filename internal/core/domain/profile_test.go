package domain

import (
	"errors"
	"testing"
)

func TestParseRole_RoundTripsExactCasing(t *testing.T) {
	for _, role := range AllRoles {
		parsed, err := ParseRole(string(role))
		if err != nil {
			t.Fatalf("ParseRole(%s) returned error: %v", role, err)
		}
		if parsed != role {
			t.Fatalf("ParseRole(%s) = %s", role, parsed)
		}
	}
}

func TestParseRole_RejectsCaseVariants(t *testing.T) {
	for _, s := range []string{"admin", "Admin", "attendant", "", "SUPERUSER"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q) should fail", s)
		}
	}
}

func TestParseRole_ReturnsFieldLevelError(t *testing.T) {
	_, err := ParseRole("SUPERUSER")
	var iae *InvalidArgumentError
	if !errors.As(err, &iae) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if iae.Field != "role" {
		t.Fatalf("expected field 'role', got %q", iae.Field)
	}
}
