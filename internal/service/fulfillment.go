package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
)

// historyLimit caps the order-history listing, matching the original screen.
const historyLimit = 5

// Errors returned by the fulfillment service.
var (
	ErrNotPermitted       = errors.New("operation not permitted for this role")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrItemStatusNotFound = errors.New("no such item on this order")
)

// FulfillmentStore defines the database methods needed by the fulfillment
// service. Satisfied by *database.Queries.
type FulfillmentStore interface {
	GetOrder(ctx context.Context, orderID int64) (database.Order, error)
	ListItemStatusByOrder(ctx context.Context, orderID int64) ([]database.ItemStatus, error)
	GetItemStatus(ctx context.Context, orderID int64, itemName string) (database.ItemStatus, error)
	UpdateItemStatusState(ctx context.Context, orderID int64, itemName, status string) (int64, error)
	MarkOrderPaid(ctx context.Context, orderID int64) (int64, error)
	ListUnpaidOrdersLastDay(ctx context.Context) ([]database.Order, error)
	ListRecentOrdersByLogin(ctx context.Context, login string, limit int32) ([]database.Order, error)
}

// FulfillmentService answers status queries and advances preparation state.
type FulfillmentService struct {
	store FulfillmentStore
}

// NewFulfillmentService creates a new FulfillmentService.
func NewFulfillmentService(store FulfillmentStore) *FulfillmentService {
	return &FulfillmentService{store: store}
}

// ItemStatuses lists the per-item fulfillment rows of an order. Staff may
// inspect any order; a Customer only their own, and a foreign order looks
// exactly like a missing one.
func (s *FulfillmentService) ItemStatuses(ctx context.Context, sess auth.Session, orderID int64) ([]database.ItemStatus, error) {
	if !sess.Role.IsStaff() {
		order, err := s.store.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrOrderNotFound
			}
			return nil, fmt.Errorf("get order: %w", err)
		}
		if order.Login != sess.Login {
			return nil, ErrOrderNotFound
		}
	}

	statuses, err := s.store.ListItemStatusByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list item statuses: %w", err)
	}
	return statuses, nil
}

// MarkPaid flips an order's paid flag false -> true. Staff only; the flag
// never flips back.
func (s *FulfillmentService) MarkPaid(ctx context.Context, sess auth.Session, orderID int64) error {
	if !sess.Role.IsStaff() {
		return ErrNotPermitted
	}

	affected, err := s.store.MarkOrderPaid(ctx, orderID)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing order from one that is already settled.
		if _, err := s.store.GetOrder(ctx, orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("get order: %w", err)
		}
		return ErrAlreadyPaid
	}
	return nil
}

// AdvanceItem moves one item's preparation status a single step along the
// strict Has Not Started -> Started -> Finished progression. Staff only;
// Finished is terminal. Returns the new status.
func (s *FulfillmentService) AdvanceItem(ctx context.Context, sess auth.Session, orderID int64, itemName string) (string, error) {
	if !sess.Role.IsStaff() {
		return "", ErrNotPermitted
	}

	current, err := s.store.GetItemStatus(ctx, orderID, itemName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrItemStatusNotFound
		}
		return "", fmt.Errorf("get item status: %w", err)
	}

	next, err := enum.NextItemStatus(current.Status)
	if err != nil {
		return "", err
	}

	if _, err := s.store.UpdateItemStatusState(ctx, orderID, itemName, next); err != nil {
		return "", fmt.Errorf("update item status: %w", err)
	}
	return next, nil
}

// CurrentOrders lists unpaid orders received in the trailing 24 hours.
// Staff only.
func (s *FulfillmentService) CurrentOrders(ctx context.Context, sess auth.Session) ([]database.Order, error) {
	if !sess.Role.IsStaff() {
		return nil, ErrNotPermitted
	}

	orders, err := s.store.ListUnpaidOrdersLastDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("list current orders: %w", err)
	}
	return orders, nil
}

// History lists the session user's most recent orders, newest first.
func (s *FulfillmentService) History(ctx context.Context, sess auth.Session) ([]database.Order, error) {
	orders, err := s.store.ListRecentOrdersByLogin(ctx, sess.Login, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	return orders, nil
}
