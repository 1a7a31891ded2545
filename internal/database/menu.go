package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const getMenuItem = `
SELECT itemName, type, price, description, imageURL
FROM Menu
WHERE itemName = $1
`

func (q *Queries) GetMenuItem(ctx context.Context, itemName string) (MenuItem, error) {
	var m MenuItem
	err := q.db.QueryRow(ctx, getMenuItem, itemName).
		Scan(&m.ItemName, &m.Type, &m.Price, &m.Description, &m.ImageURL)
	return m, err
}

const searchMenuByName = `
SELECT itemName, type, price, description, imageURL
FROM Menu
WHERE itemName LIKE '%' || $1 || '%'
ORDER BY itemName
`

// SearchMenuByName performs a case-sensitive substring match on item names.
func (q *Queries) SearchMenuByName(ctx context.Context, substring string) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, searchMenuByName, substring)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

const searchMenuByType = `
SELECT itemName, type, price, description, imageURL
FROM Menu
WHERE type LIKE '%' || $1 || '%'
ORDER BY itemName
`

// SearchMenuByType performs a case-sensitive substring match on categories.
func (q *Queries) SearchMenuByType(ctx context.Context, substring string) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, searchMenuByType, substring)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

func scanMenuItems(rows pgx.Rows) ([]MenuItem, error) {
	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ItemName, &m.Type, &m.Price, &m.Description, &m.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const createMenuItem = `
INSERT INTO Menu (itemName, type, price, description, imageURL)
VALUES ($1, $2, $3, $4, $5)
`

// CreateMenuItemParams carries the columns of a new Menu row.
type CreateMenuItemParams struct {
	ItemName    string
	Type        string
	Price       pgtype.Numeric
	Description string
	ImageURL    string
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) error {
	_, err := q.db.Exec(ctx, createMenuItem, arg.ItemName, arg.Type, arg.Price, arg.Description, arg.ImageURL)
	return err
}

const updateMenuItemName = `
UPDATE Menu SET itemName = $2 WHERE itemName = $1
`

func (q *Queries) UpdateMenuItemName(ctx context.Context, itemName, newName string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateMenuItemName, itemName, newName)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const updateMenuItemType = `
UPDATE Menu SET type = $2 WHERE itemName = $1
`

func (q *Queries) UpdateMenuItemType(ctx context.Context, itemName, newType string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateMenuItemType, itemName, newType)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const updateMenuItemPrice = `
UPDATE Menu SET price = $2 WHERE itemName = $1
`

func (q *Queries) UpdateMenuItemPrice(ctx context.Context, itemName string, price pgtype.Numeric) (int64, error) {
	tag, err := q.db.Exec(ctx, updateMenuItemPrice, itemName, price)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const updateMenuItemDescription = `
UPDATE Menu SET description = $2 WHERE itemName = $1
`

func (q *Queries) UpdateMenuItemDescription(ctx context.Context, itemName, description string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateMenuItemDescription, itemName, description)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const updateMenuItemImageURL = `
UPDATE Menu SET imageURL = $2 WHERE itemName = $1
`

func (q *Queries) UpdateMenuItemImageURL(ctx context.Context, itemName, imageURL string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateMenuItemImageURL, itemName, imageURL)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteMenuItem = `
DELETE FROM Menu WHERE itemName = $1
`

func (q *Queries) DeleteMenuItem(ctx context.Context, itemName string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteMenuItem, itemName)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
