package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAdminKey hashes an operator key with bcrypt. The result goes in ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckAdminKey reports whether key matches the stored hash. An empty hash never matches.
func CheckAdminKey(key, hash string) bool {
	if hash == "" || key == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}
