// Package password hashes and checks user and class passwords.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of password. Passwords longer than 72 bytes
// are rejected by bcrypt and surface as an error.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check reports whether password matches hash.
func Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
