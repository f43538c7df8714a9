package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword creates a salted bcrypt hash of the password
func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", infraError("hash password", err)
	}
	return string(hash), nil
}

// verifyPassword checks if a password matches the stored hash
func (s *Service) verifyPassword(passwordHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
