package database

import "context"

const createItemStatus = `
INSERT INTO ItemStatus (orderid, itemName, amount, lastUpdated, status, comments)
VALUES ($1, $2, $3, NOW(), $4, $5)
`

// CreateItemStatusParams carries the columns of a new ItemStatus row.
type CreateItemStatusParams struct {
	OrderID  int64
	ItemName string
	Amount   int32
	Status   string
	Comments string
}

func (q *Queries) CreateItemStatus(ctx context.Context, arg CreateItemStatusParams) error {
	_, err := q.db.Exec(ctx, createItemStatus, arg.OrderID, arg.ItemName, arg.Amount, arg.Status, arg.Comments)
	return err
}

const getItemStatus = `
SELECT orderid, itemName, amount, lastUpdated, status, comments
FROM ItemStatus
WHERE orderid = $1 AND itemName = $2
`

func (q *Queries) GetItemStatus(ctx context.Context, orderID int64, itemName string) (ItemStatus, error) {
	var s ItemStatus
	err := q.db.QueryRow(ctx, getItemStatus, orderID, itemName).
		Scan(&s.OrderID, &s.ItemName, &s.Amount, &s.LastUpdated, &s.Status, &s.Comments)
	return s, err
}

const listItemStatusByOrder = `
SELECT orderid, itemName, amount, lastUpdated, status, comments
FROM ItemStatus
WHERE orderid = $1
ORDER BY itemName
`

func (q *Queries) ListItemStatusByOrder(ctx context.Context, orderID int64) ([]ItemStatus, error) {
	rows, err := q.db.Query(ctx, listItemStatusByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []ItemStatus
	for rows.Next() {
		var s ItemStatus
		if err := rows.Scan(&s.OrderID, &s.ItemName, &s.Amount, &s.LastUpdated, &s.Status, &s.Comments); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

const accumulateItemStatus = `
UPDATE ItemStatus
SET amount = amount + $3,
    lastUpdated = NOW(),
    comments = CASE
        WHEN $4 = '' THEN comments
        WHEN comments = '' THEN $4
        ELSE comments || '\' || $4
    END
WHERE orderid = $1 AND itemName = $2
`

// AccumulateItemStatus adds a signed amount to the row, appends a non-empty
// comment behind a backslash separator and refreshes the timestamp. An empty
// comment leaves the stored comment untouched, never a dangling separator.
func (q *Queries) AccumulateItemStatus(ctx context.Context, orderID int64, itemName string, amount int32, comment string) error {
	_, err := q.db.Exec(ctx, accumulateItemStatus, orderID, itemName, amount, comment)
	return err
}

const updateItemStatusState = `
UPDATE ItemStatus
SET status = $3, lastUpdated = NOW()
WHERE orderid = $1 AND itemName = $2
`

func (q *Queries) UpdateItemStatusState(ctx context.Context, orderID int64, itemName, status string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateItemStatusState, orderID, itemName, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const pruneItemStatus = `
DELETE FROM ItemStatus
WHERE orderid = $1 AND amount <= 0
`

// PruneItemStatus removes this order's rows whose net amount has been
// reduced to zero or below.
func (q *Queries) PruneItemStatus(ctx context.Context, orderID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, pruneItemStatus, orderID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
