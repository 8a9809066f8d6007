package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords over MaxPasswordBytes.  The
// limit counts bytes, so a password of 25 three-byte runes is already too
// long.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword returns a salted bcrypt hash using the given cost.  Every call
// draws a fresh salt, so hashing the same password twice yields different
// strings.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password in constant
// time.  A malformed hash, or a password that could never have been hashed,
// fails the comparison.
func VerifyPassword(hash, plain string) bool {
	if len(plain) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
