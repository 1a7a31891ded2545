package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
)

// Errors returned by the admin service.
var (
	ErrManagerOnly   = errors.New("only a manager may do this")
	ErrEmptyItemName = errors.New("item name must not be empty")
	ErrEmptyItemType = errors.New("item type must not be empty")
	ErrInvalidPrice  = errors.New("price must be a positive amount")
	ErrUserNotFound  = errors.New("user not found")
)

// AdminStore defines the database methods needed by menu and user
// maintenance. Satisfied by *database.Queries.
type AdminStore interface {
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) error
	UpdateMenuItemName(ctx context.Context, itemName, newName string) (int64, error)
	UpdateMenuItemType(ctx context.Context, itemName, newType string) (int64, error)
	UpdateMenuItemPrice(ctx context.Context, itemName string, price pgtype.Numeric) (int64, error)
	UpdateMenuItemDescription(ctx context.Context, itemName, description string) (int64, error)
	UpdateMenuItemImageURL(ctx context.Context, itemName, imageURL string) (int64, error)
	DeleteMenuItem(ctx context.Context, itemName string) (int64, error)
	UpdateUserType(ctx context.Context, login, userType string) (int64, error)
}

// AdminService performs Manager-gated menu and user maintenance.
type AdminService struct {
	store AdminStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// AddMenuItemParams is the validated input for a new menu item.
type AddMenuItemParams struct {
	ItemName    string
	Type        string
	Price       string
	Description string
	ImageURL    string
}

// AddItem creates a menu item. Name and type must be non-empty; the price
// must parse as a positive decimal.
func (s *AdminService) AddItem(ctx context.Context, sess auth.Session, arg AddMenuItemParams) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	if strings.TrimSpace(arg.ItemName) == "" {
		return ErrEmptyItemName
	}
	if strings.TrimSpace(arg.Type) == "" {
		return ErrEmptyItemType
	}
	price, err := ParsePrice(arg.Price)
	if err != nil {
		return err
	}

	err = s.store.CreateMenuItem(ctx, database.CreateMenuItemParams{
		ItemName:    arg.ItemName,
		Type:        arg.Type,
		Price:       database.DecimalToNumeric(price),
		Description: arg.Description,
		ImageURL:    arg.ImageURL,
	})
	if err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Rename changes an item's name.
func (s *AdminService) Rename(ctx context.Context, sess auth.Session, itemName, newName string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	if strings.TrimSpace(newName) == "" {
		return ErrEmptyItemName
	}
	return s.checkTouched(s.store.UpdateMenuItemName(ctx, itemName, newName))
}

// Retype changes an item's category.
func (s *AdminService) Retype(ctx context.Context, sess auth.Session, itemName, newType string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	if strings.TrimSpace(newType) == "" {
		return ErrEmptyItemType
	}
	return s.checkTouched(s.store.UpdateMenuItemType(ctx, itemName, newType))
}

// Reprice changes an item's price; the new price must be positive.
func (s *AdminService) Reprice(ctx context.Context, sess auth.Session, itemName, priceStr string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	price, err := ParsePrice(priceStr)
	if err != nil {
		return err
	}
	return s.checkTouched(s.store.UpdateMenuItemPrice(ctx, itemName, database.DecimalToNumeric(price)))
}

// Redescribe changes an item's description.
func (s *AdminService) Redescribe(ctx context.Context, sess auth.Session, itemName, description string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	return s.checkTouched(s.store.UpdateMenuItemDescription(ctx, itemName, description))
}

// Reimage changes an item's image reference.
func (s *AdminService) Reimage(ctx context.Context, sess auth.Session, itemName, imageURL string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	return s.checkTouched(s.store.UpdateMenuItemImageURL(ctx, itemName, imageURL))
}

// DeleteItem removes a menu item.
func (s *AdminService) DeleteItem(ctx context.Context, sess auth.Session, itemName string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	return s.checkTouched(s.store.DeleteMenuItem(ctx, itemName))
}

// ChangeUserRole rewrites another user's role to one of the three recognized
// values; anything else fails role parsing before a statement is issued.
func (s *AdminService) ChangeUserRole(ctx context.Context, sess auth.Session, targetLogin, roleStr string) error {
	if sess.Role != enum.RoleManager {
		return ErrManagerOnly
	}
	role, err := enum.ParseRole(roleStr)
	if err != nil {
		return err
	}

	affected, err := s.store.UpdateUserType(ctx, targetLogin, string(role))
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// checkTouched maps (rowsAffected, err) from a single-row update onto the
// service error vocabulary.
func (s *AdminService) checkTouched(affected int64, err error) error {
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ParsePrice validates a positive decimal price literal.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return d, nil
}
