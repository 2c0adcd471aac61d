package auth

import (
	"errors"
	"fmt"

	"miniblog/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown-email and wrong-password
// logins. The two cases are deliberately indistinguishable so the login
// form cannot be used to probe which emails are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// UserStore is the slice of the credential store the auth flow needs.
type UserStore interface {
	Create(username, email, passwordHash string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

// Service orchestrates signup and login against the credential store.
type Service struct {
	users UserStore
}

// NewService creates a new auth service
func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// SignUp hashes the password and creates the user. A duplicate email
// passes through as store.ErrDuplicateEmail; the new user is not
// logged in by signing up.
func (s *Service) SignUp(username, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(username, email, hash)
}

// LogIn verifies the email and password and returns the matching user,
// or ErrInvalidCredentials.
func (s *Service) LogIn(email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash. Comparison is done by bcrypt, never by raw string equality.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
