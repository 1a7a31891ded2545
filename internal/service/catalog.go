package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafe-pos/cafe/internal/database"
)

// ErrItemNotFound is returned when a menu item name does not match any row.
var ErrItemNotFound = errors.New("menu item not found")

// CatalogStore defines the database methods needed by the catalog service.
// Satisfied by *database.Queries; narrow interface for testability.
type CatalogStore interface {
	SearchMenuByName(ctx context.Context, substring string) ([]database.MenuItem, error)
	SearchMenuByType(ctx context.Context, substring string) ([]database.MenuItem, error)
	GetMenuItem(ctx context.Context, itemName string) (database.MenuItem, error)
}

// CatalogService answers menu browsing queries.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// SearchByName returns items whose name contains the substring. Zero matches
// is an empty result, not an error.
func (s *CatalogService) SearchByName(ctx context.Context, substring string) ([]database.MenuItem, error) {
	items, err := s.store.SearchMenuByName(ctx, substring)
	if err != nil {
		return nil, fmt.Errorf("search menu by name: %w", err)
	}
	return items, nil
}

// SearchByType returns items whose category contains the substring.
func (s *CatalogService) SearchByType(ctx context.Context, substring string) ([]database.MenuItem, error) {
	items, err := s.store.SearchMenuByType(ctx, substring)
	if err != nil {
		return nil, fmt.Errorf("search menu by type: %w", err)
	}
	return items, nil
}

// GetItem resolves an exact item name, as the order workflow's item-entry
// validation requires.
func (s *CatalogService) GetItem(ctx context.Context, name string) (database.MenuItem, error) {
	item, err := s.store.GetMenuItem(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.MenuItem{}, ErrItemNotFound
		}
		return database.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}
