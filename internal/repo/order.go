package repo

import (
	"context"

	"bookstore/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, userID uint, address string) (*models.Order, error) {
	order := models.Order{UserID: userID, Address: address}
	if err := r.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) AddOrderItem(ctx context.Context, orderID uint, isbn string) error {
	item := models.OrderItem{OrderID: orderID, ISBN: isbn}
	return r.DB.WithContext(ctx).Create(&item).Error
}

func (r *GormRepo) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
