// Package credential hashes and verifies citizen PINs and admin passwords.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost used for existing rows.
const DefaultCost = 10

// Hasher wraps bcrypt with a fixed cost.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher. A cost outside bcrypt's range falls back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{Cost: cost}
}

// Hash returns a salted bcrypt hash of secret.
func (h *Hasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash. An empty or malformed hash is a
// mismatch, not an error.
func (h *Hasher) Verify(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
