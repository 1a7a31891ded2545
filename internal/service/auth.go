package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
)

// Errors returned by the auth service.
var (
	ErrEmptyLogin         = errors.New("login must not be empty")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrLoginTaken         = errors.New("login is already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// AuthStore defines the database methods needed by the auth service.
// Satisfied by *database.Queries; narrow interface for testability.
type AuthStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) error
	GetUserByLogin(ctx context.Context, login string) (database.User, error)
}

// AuthService creates accounts and opens sessions.
type AuthService struct {
	store AuthStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AuthStore) *AuthService {
	return &AuthService{store: store}
}

// CreateAccount registers a new Customer. Login and password must contain
// something other than whitespace; the credential is stored as a bcrypt hash.
func (s *AuthService) CreateAccount(ctx context.Context, login, password, phone string) error {
	if strings.TrimSpace(login) == "" {
		return ErrEmptyLogin
	}
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.store.CreateUser(ctx, database.CreateUserParams{
		Login:    login,
		Password: hash,
		PhoneNum: phone,
		FavItems: "",
		Type:     string(enum.RoleCustomer),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrLoginTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies credentials and returns a fresh session carrying the
// resolved role. Unknown logins and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (auth.Session, error) {
	user, err := s.store.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("get user: %w", err)
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return auth.Session{}, ErrInvalidCredentials
	}

	role, err := enum.ParseRole(user.Type)
	if err != nil {
		return auth.Session{}, fmt.Errorf("resolve role for %q: %w", login, err)
	}

	return auth.NewSession(user.Login, role), nil
}

// isUniqueViolation checks for Postgres error code 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
