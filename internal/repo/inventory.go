package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bookstore/internal/models"
)

func (r *GormRepo) GetInventory(ctx context.Context, isbn string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB.WithContext(ctx).Where("isbn = ?", isbn).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetInventoryForUpdate reads the inventory row under a row lock so a
// competing checkout cannot decrement it between check and mutation.
func (r *GormRepo) GetInventoryForUpdate(ctx context.Context, isbn string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	q := r.forUpdate(r.DB.WithContext(ctx)).Where("isbn = ?", isbn)
	if err := q.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// DecrementInventory subtracts by units, guarded so quantity can never
// go below zero. A guard miss reports ErrConflict.
func (r *GormRepo) DecrementInventory(ctx context.Context, isbn string, by int) error {
	if by <= 0 {
		return fmt.Errorf("%w: decrement must be positive", ErrConflict)
	}
	res := r.DB.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("isbn = ? AND quantity >= ?", isbn, by).
		Update("quantity", gorm.Expr("quantity - ?", by))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// UpsertInventory sets price and/or quantity for a book, creating the
// inventory row if it does not exist yet.
func (r *GormRepo) UpsertInventory(ctx context.Context, isbn string, price *float64, quantity *int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		err := tx.Where("isbn = ?", isbn).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.InventoryItem{ISBN: isbn}
			if price != nil {
				item.Price = *price
			}
			if quantity != nil {
				item.Quantity = *quantity
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if price != nil {
			updates["price"] = *price
		}
		if quantity != nil {
			updates["quantity"] = *quantity
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.InventoryItem{}).Where("isbn = ?", isbn).Updates(updates).Error
	})
}
