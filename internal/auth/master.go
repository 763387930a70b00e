// Package auth checks callers against the process-wide master secret.
package auth

import (
	"crypto/subtle"
)

// MasterKey gates creation with a shared secret captured once at startup.
// It is immutable after construction.
type MasterKey struct {
	secret  []byte
	enabled bool
}

// NewMasterKey returns a MasterKey. When enabled is false every caller is
// allowed. An enabled key with an empty secret only admits callers that send
// an empty secret.
func NewMasterKey(secret string, enabled bool) *MasterKey {
	return &MasterKey{
		secret:  []byte(secret),
		enabled: enabled,
	}
}

// Enabled reports whether a master secret is configured.
func (k *MasterKey) Enabled() bool {
	return k.enabled
}

// Allow reports whether provided satisfies the configured secret. A nil
// provided means the caller sent no secret.
func (k *MasterKey) Allow(provided *string) bool {
	if !k.enabled {
		return true
	}
	if provided == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*provided), k.secret) == 1
}
