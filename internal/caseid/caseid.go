// Package caseid generates the public case identifiers handed to citizens.
package caseid

import (
	"complaintbox/backend/internal/config"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is URL-safe so identifiers can appear in links unescaped.
const Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate returns a random identifier of config.CaseIDLength characters drawn
// from crypto/rand. Uniqueness is left to the storage constraint.
func Generate() (string, error) {
	return gonanoid.Generate(Alphabet, config.CaseIDLength)
}
