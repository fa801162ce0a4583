package util

import (
	"golang.org/x/crypto/bcrypt"
)

// admin credentials are hashed once at seed time, so the higher cost is fine
const passwordHashCost = 12

// HashPassword derives a bcrypt hash for storing a credential at rest.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash. The seed
// command uses it to detect a rotated admin credential.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
