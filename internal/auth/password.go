package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCredentialsIncorrect is returned when an email/password pair does not match.
var ErrCredentialsIncorrect = errors.New("credentials incorrect")

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword compares password with a bcrypt hash and returns
// ErrCredentialsIncorrect on mismatch.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrCredentialsIncorrect
	}
	return err
}
