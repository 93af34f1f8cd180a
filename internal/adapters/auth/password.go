package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"schoollink/internal/domain"
)

const saltBytes = 16

type pinHasher struct {
	cost int
}

// NewPINHasher returns a PasswordHasher for short numeric PINs. The salted PIN is
// digested with SHA-256 before bcrypt so every input has the same length.
func NewPINHasher(cost int) domain.PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &pinHasher{cost: cost}
}

func (h *pinHasher) GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (h *pinHasher) Hash(salt, pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(salt, pin), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// Compare returns domain.ErrInvalidPIN when pin does not match hash.
func (h *pinHasher) Compare(hash, salt, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), digest(salt, pin)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidPIN, err)
	}
	return nil
}

func digest(salt, pin string) []byte {
	sum := sha256.Sum256([]byte(salt + pin))
	return []byte(hex.EncodeToString(sum[:]))
}
