package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordBytes = 8
	// MaxPasswordBytes is the bcrypt input limit; longer secrets would be silently truncated.
	MaxPasswordBytes = 72
)

var (
	ErrPasswordLength   = fmt.Errorf("password must be %d to %d bytes", MinPasswordBytes, MaxPasswordBytes)
	ErrPasswordMismatch = errors.New("password mismatch")
)

// PasswordHasher hashes and verifies admin credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher stores admin passwords as bcrypt digests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher. Costs outside bcrypt bounds select bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash refuses passwords bcrypt cannot represent exactly.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if n := len(password); n < MinPasswordBytes || n > MaxPasswordBytes {
		return "", ErrPasswordLength
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

// Compare returns ErrPasswordMismatch for a wrong password and the bcrypt error for a malformed hash.
func (h *BcryptHasher) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
