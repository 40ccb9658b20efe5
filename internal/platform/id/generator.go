package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates the opaque ids handed out for teams, players, matches
// and leagues. Virtual players are the exception: their ids are derived
// from the owning team so reimports hit the same record.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues 32-char hex ids from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
