package crypto

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// bcrypt ignores everything past 72 bytes; truncate up front so long
// passphrases hash and verify consistently.
const bcryptMaxLength = 72

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. It never fails:
// a malformed digest is logged and treated as a mismatch.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Printf("password check: malformed digest: %v", err)
	}
	return false
}

func truncate(password string) []byte {
	raw := []byte(password)
	if len(raw) > bcryptMaxLength {
		raw = raw[:bcryptMaxLength]
	}
	return raw
}
