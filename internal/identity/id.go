package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newID returns an opaque id built from the creation timestamp plus a random
// suffix, so two users created in the same millisecond still get distinct
// ids.
func newID() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
