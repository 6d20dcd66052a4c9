// Package checkout implements order placement: the atomic transition of
// requested items into a persisted order with inventory deduction and
// cart cleanup. All of it runs as one database transaction.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/logging"
	"bookstore/internal/models"
	"bookstore/internal/repo"
)

var (
	ErrValidation        = errors.New("validation")
	ErrItemUnavailable   = errors.New("item unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPersistence       = errors.New("persistence failure")
)

type Service struct {
	Repo *repo.GormRepo
}

type Confirmation struct {
	OrderID uint               `json:"order_id"`
	Items   []models.OrderItem `json:"items"`
}

// PlaceOrder validates every requested ISBN against live inventory,
// creates the order with its line items, decrements stock and clears
// the purchased entries from the caller's cart. The whole sequence is
// all-or-nothing: any failure rolls back and nothing is persisted.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, address string, isbns []string) (*Confirmation, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.place_order", "user_id", userID)

	if address == "" {
		return nil, fmt.Errorf("%w: address required", ErrValidation)
	}
	if len(isbns) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, isbn := range isbns {
		if isbn == "" {
			return nil, fmt.Errorf("%w: isbn required", ErrValidation)
		}
	}

	var conf *Confirmation
	txErr := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		// Check every item under a row lock before touching anything.
		// A duplicate ISBN in the request counts as one more unit.
		needed := make(map[string]int, len(isbns))
		for _, isbn := range isbns {
			item, err := tx.GetInventoryForUpdate(ctx, isbn)
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrItemUnavailable, isbn)
			}
			if err != nil {
				return err
			}
			needed[isbn]++
			if item.Quantity < needed[isbn] {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, isbn)
			}
		}

		order, err := tx.CreateOrder(ctx, userID, address)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(isbns))
		for _, isbn := range isbns {
			if err := tx.AddOrderItem(ctx, order.ID, isbn); err != nil {
				return err
			}
			if err := tx.DecrementInventory(ctx, isbn, 1); err != nil {
				// The lock makes this unreachable, but the guard stands
				// on its own: quantity never goes below zero.
				if errors.Is(err, repo.ErrConflict) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, isbn)
				}
				return err
			}
			if err := tx.RemoveCartEntry(ctx, userID, isbn); err != nil {
				return err
			}
			items = append(items, models.OrderItem{OrderID: order.ID, ISBN: isbn})
		}

		conf = &Confirmation{OrderID: order.ID, Items: items}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrItemUnavailable) || errors.Is(txErr, ErrInsufficientStock) {
			l.Warn("order rejected", "reason", txErr.Error())
			return nil, txErr
		}
		l.Error("order failed", "error", txErr)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, txErr)
	}

	l.Info("order placed", "order_id", conf.OrderID, "items", len(conf.Items))
	return conf, nil
}
