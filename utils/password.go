package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 12 keeps the work factor at 2^12, above the library default.
const bcryptCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword returns a salted bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
// It never returns an error: a malformed hash or empty input is just false.
func VerifyPassword(hash, plain string) bool {
	if hash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
