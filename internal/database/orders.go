package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `
INSERT INTO Orders (login, paid, timeStampRecieved, total)
VALUES ($1, false, NOW(), $2)
RETURNING orderid, login, paid, timeStampRecieved, total
`

// CreateOrder inserts an unpaid order and returns the row, including the
// generated orderid. The identifier comes back from the insert itself; there
// is no follow-up lookup to race against.
func (q *Queries) CreateOrder(ctx context.Context, login string, total pgtype.Numeric) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, createOrder, login, total).
		Scan(&o.OrderID, &o.Login, &o.Paid, &o.Received, &o.Total)
	return o, err
}

const getOrder = `
SELECT orderid, login, paid, timeStampRecieved, total
FROM Orders
WHERE orderid = $1
`

func (q *Queries) GetOrder(ctx context.Context, orderID int64) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrder, orderID).
		Scan(&o.OrderID, &o.Login, &o.Paid, &o.Received, &o.Total)
	return o, err
}

const addToOrderTotal = `
UPDATE Orders SET total = total + $2
WHERE orderid = $1
RETURNING orderid, login, paid, timeStampRecieved, total
`

// AddToOrderTotal increments the running total by the given (possibly
// negative) delta and returns the updated row.
func (q *Queries) AddToOrderTotal(ctx context.Context, orderID int64, delta pgtype.Numeric) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, addToOrderTotal, orderID, delta).
		Scan(&o.OrderID, &o.Login, &o.Paid, &o.Received, &o.Total)
	return o, err
}

const markOrderPaid = `
UPDATE Orders SET paid = true
WHERE orderid = $1 AND paid = false
`

// MarkOrderPaid flips the paid flag false -> true. Zero rows affected means
// the order was already paid or does not exist.
func (q *Queries) MarkOrderPaid(ctx context.Context, orderID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, markOrderPaid, orderID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listRecentOrdersByLogin = `
SELECT orderid, login, paid, timeStampRecieved, total
FROM Orders
WHERE login = $1
ORDER BY timeStampRecieved DESC
LIMIT $2
`

func (q *Queries) ListRecentOrdersByLogin(ctx context.Context, login string, limit int32) ([]Order, error) {
	rows, err := q.db.Query(ctx, listRecentOrdersByLogin, login, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

const listUnpaidOrdersLastDay = `
SELECT orderid, login, paid, timeStampRecieved, total
FROM Orders
WHERE paid = false AND timeStampRecieved >= NOW() - INTERVAL '1 day'
ORDER BY timeStampRecieved DESC
`

// ListUnpaidOrdersLastDay returns unpaid orders received in the trailing
// 24 hours, newest first.
func (q *Queries) ListUnpaidOrdersLastDay(ctx context.Context) ([]Order, error) {
	rows, err := q.db.Query(ctx, listUnpaidOrdersLastDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.OrderID, &o.Login, &o.Paid, &o.Received, &o.Total); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
