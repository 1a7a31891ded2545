package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
)

// Errors returned by the order service.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderPaid       = errors.New("order has been paid and can no longer change")
	ErrReduceBelowZero = errors.New("cannot reduce an item below the amount on the order")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to persist orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	CreateOrder(ctx context.Context, login string, total pgtype.Numeric) (database.Order, error)
	GetOrder(ctx context.Context, orderID int64) (database.Order, error)
	AddToOrderTotal(ctx context.Context, orderID int64, delta pgtype.Numeric) (database.Order, error)
	CreateItemStatus(ctx context.Context, arg database.CreateItemStatusParams) error
	GetItemStatus(ctx context.Context, orderID int64, itemName string) (database.ItemStatus, error)
	AccumulateItemStatus(ctx context.Context, orderID int64, itemName string, amount int32, comment string) error
	PruneItemStatus(ctx context.Context, orderID int64) (int64, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// OrderService persists drafted orders and amendments atomically.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// Create persists a create-mode draft as a new unpaid order: one Orders row
// whose total is the draft total, plus one "Has Not Started" ItemStatus row
// per distinct item. Everything happens in a single transaction and the
// generated order identifier is read back from the insert. An empty draft
// writes nothing.
func (s *OrderService) Create(ctx context.Context, login string, d *Draft) (database.Order, error) {
	if d.Mode() != DraftCreate {
		return database.Order{}, ErrDraftMode
	}
	if d.Empty() {
		return database.Order{}, ErrEmptyDraft
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.CreateOrder(ctx, login, database.DecimalToNumeric(d.Total()))
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}

	for _, name := range d.Items() {
		err := store.CreateItemStatus(ctx, database.CreateItemStatusParams{
			OrderID:  order.OrderID,
			ItemName: name,
			Amount:   d.Amount(name),
			Status:   enum.ItemStatusNotStarted,
			Comments: d.Comment(name),
		})
		if err != nil {
			return database.Order{}, fmt.Errorf("create item status %q: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return order, nil
}

// Amend applies an amend-mode draft to an existing unpaid order owned by the
// session's login. The order total moves by the draft's signed total; touched
// items get a new ItemStatus row or have their amount accumulated and their
// comment appended; rows whose amount fell to zero are pruned. A reduction
// larger than an item's recorded amount is rejected with ErrReduceBelowZero.
// An order belonging to someone else looks exactly like a missing order.
func (s *OrderService) Amend(ctx context.Context, sess auth.Session, orderID int64, d *Draft) (database.Order, error) {
	if d.Mode() != DraftAmend {
		return database.Order{}, ErrDraftMode
	}
	if d.Empty() {
		return database.Order{}, ErrEmptyDraft
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	if order.Login != sess.Login {
		return database.Order{}, ErrOrderNotFound
	}
	if order.Paid {
		return database.Order{}, ErrOrderPaid
	}

	// A reduction may not take any item's recorded amount below zero:
	// pruning would drop the shortfall while the total kept it, and the
	// total must stay equal to the sum over the remaining rows.
	for _, name := range d.Items() {
		if d.Amount(name) >= 0 {
			continue
		}
		current, err := store.GetItemStatus(ctx, orderID, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return database.Order{}, ErrReduceBelowZero
			}
			return database.Order{}, fmt.Errorf("get item status %q: %w", name, err)
		}
		if current.Amount+d.Amount(name) < 0 {
			return database.Order{}, ErrReduceBelowZero
		}
	}

	updated, err := store.AddToOrderTotal(ctx, orderID, database.DecimalToNumeric(d.Total()))
	if err != nil {
		return database.Order{}, fmt.Errorf("update order total: %w", err)
	}

	for _, name := range d.Items() {
		_, err := store.GetItemStatus(ctx, orderID, name)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			err := store.CreateItemStatus(ctx, database.CreateItemStatusParams{
				OrderID:  orderID,
				ItemName: name,
				Amount:   d.Amount(name),
				Status:   enum.ItemStatusNotStarted,
				Comments: d.Comment(name),
			})
			if err != nil {
				return database.Order{}, fmt.Errorf("create item status %q: %w", name, err)
			}
		case err != nil:
			return database.Order{}, fmt.Errorf("get item status %q: %w", name, err)
		default:
			if err := store.AccumulateItemStatus(ctx, orderID, name, d.Amount(name), d.Comment(name)); err != nil {
				return database.Order{}, fmt.Errorf("accumulate item status %q: %w", name, err)
			}
		}
	}

	if _, err := store.PruneItemStatus(ctx, orderID); err != nil {
		return database.Order{}, fmt.Errorf("prune item status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return updated, nil
}
