package uid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NewGuestID generates a guest identifier in the "guest_<millis>_<suffix>"
// format the storefront has always used. The timestamp keeps ids sortable,
// the UUID fragment avoids in-session collisions.
func NewGuestID() string {
	return fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
