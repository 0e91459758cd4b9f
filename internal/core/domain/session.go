package domain

import "time"

// Session is the resolved result of validating a client-held token. It carries
// the authoritative profile identity and role for the duration of one request;
// the role always comes from the validated claim, never from client input.
type Session struct {
	ProfileID string
	Role      Role
	ExpiresAt time.Time
}
