package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingReference builds a human-readable reference from a
// time-ordered component and an opaque suffix: "SF" + epoch millis + 10
// uppercase hex characters. The suffix length keeps collision probability
// negligible even when many references are minted within one millisecond;
// the storage layer's unique column is the backstop.
func GenerateBookingReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("SF%d%s", time.Now().UnixMilli(), suffix)
}

// GenerateLockToken identifies the owner of a seat lock for the lifetime of
// one reservation attempt.
func GenerateLockToken() string {
	return uuid.NewString()
}
