// Package identity decides whose data a command reads and writes.
package identity

import (
	"strings"

	"github.com/julianstephens/verdant/internal/constants"
)

// Resolve returns the first non-blank of flag and env, or the anonymous
// user when neither is set.
func Resolve(flag, env string) string {
	for _, candidate := range []string{flag, env} {
		if id := strings.TrimSpace(candidate); id != "" {
			return id
		}
	}
	return constants.AnonymousUserID
}

// IsAnonymous reports whether userID is the anonymous sentinel.
func IsAnonymous(userID string) bool {
	return userID == constants.AnonymousUserID
}
