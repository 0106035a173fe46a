package service

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword stores new passwords as bcrypt hashes. Empty passwords are
// kept empty; such cards simply cannot be edited later.
func hashPassword(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// matchPassword compares a stored credential with a supplied one. Rows
// written before hashing hold the plaintext; those are compared in
// constant time so legacy cards keep working.
func matchPassword(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
