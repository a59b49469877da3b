package ids

import "github.com/google/uuid"

// New returns a random (v4) UUID string. Safe for concurrent use.
func New() string {
	return uuid.NewString()
}
