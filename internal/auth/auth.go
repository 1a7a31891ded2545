// Package auth holds the session value threaded through every workflow call
// and the credential hashing helpers.
package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cafe-pos/cafe/internal/enum"
)

// Session identifies one authenticated console session. It is created at
// login and passed explicitly to every operation that needs the identity or
// the role; there is no process-wide current user.
type Session struct {
	ID    uuid.UUID
	Login string
	Role  enum.Role
}

// NewSession mints a session for the given identity with a fresh identifier.
// The identifier only serves log correlation.
func NewSession(login string, role enum.Role) Session {
	return Session{
		ID:    uuid.New(),
		Login: login,
		Role:  role,
	}
}

// HashPassword derives the bcrypt hash stored in the password column.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored hash against a typed credential.
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
