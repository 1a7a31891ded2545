package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafe-pos/cafe/internal/auth"
)

// ProfileStore defines the database methods needed by self-service profile
// updates. Satisfied by *database.Queries.
type ProfileStore interface {
	UpdateUserPassword(ctx context.Context, login, password string) error
	UpdateUserPhone(ctx context.Context, login, phone string) error
	AppendUserFavItem(ctx context.Context, login, item string) error
}

// ProfileService lets any authenticated user maintain their own record.
type ProfileService struct {
	store ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// UpdatePassword replaces the session user's credential with a new bcrypt
// hash. The new password must be non-empty.
func (s *ProfileService) UpdatePassword(ctx context.Context, sess auth.Session, password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, sess.Login, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdatePhone replaces the session user's contact phone.
func (s *ProfileService) UpdatePhone(ctx context.Context, sess auth.Session, phone string) error {
	if err := s.store.UpdateUserPhone(ctx, sess.Login, phone); err != nil {
		return fmt.Errorf("update phone: %w", err)
	}
	return nil
}

// AddFavoriteItem appends an item to the session user's free-text favorite
// list.
func (s *ProfileService) AddFavoriteItem(ctx context.Context, sess auth.Session, item string) error {
	if err := s.store.AppendUserFavItem(ctx, sess.Login, item); err != nil {
		return fmt.Errorf("append favorite item: %w", err)
	}
	return nil
}
