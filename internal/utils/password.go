package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
)

// MinPasswordLength is the minimum accepted length for agent passwords.
const MinPasswordLength = 8

// HashPassword hashes an agent password with bcrypt at the default cost.
// Passwords shorter than MinPasswordLength are rejected before hashing.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, apperrors.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
