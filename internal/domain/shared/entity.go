package shared

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a new random identifier for entities created at runtime.
// Seeded fixtures keep their short ids (i1, p1, ...).
func NewID() string {
	return uuid.NewString()
}

// IsBlank reports whether s is empty after trimming whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
