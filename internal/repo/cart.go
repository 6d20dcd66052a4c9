package repo

import (
	"context"

	"bookstore/internal/models"
)

func (r *GormRepo) AddCartEntry(ctx context.Context, userID uint, isbn string) (*models.CartItem, error) {
	item := models.CartItem{UserID: userID, ISBN: isbn}
	if err := r.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartEntry deletes every queued unit of the book from the user's
// cart. Removing an absent entry is not an error.
func (r *GormRepo) RemoveCartEntry(ctx context.Context, userID uint, isbn string) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ListCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountCart(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *GormRepo) CartContains(ctx context.Context, userID uint, isbn string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		Count(&count).Error
	return count > 0, err
}

// CartBooks lists the cart joined with catalog data, one row per book
// with average rating and price, same shape as the catalog listing.
func (r *GormRepo) CartBooks(ctx context.Context, userID uint) ([]BookSummary, error) {
	var out []BookSummary
	err := r.DB.WithContext(ctx).
		Table("cart_items c").
		Select("b.isbn, b.title, b.author, b.image_url, COALESCE(AVG(r.rating), 0) AS average_rating, COALESCE(i.price, 0) AS price").
		Joins("JOIN books b ON c.isbn = b.isbn").
		Joins("LEFT JOIN ratings r ON b.isbn = r.isbn").
		Joins("LEFT JOIN inventory_items i ON b.isbn = i.isbn").
		Where("c.user_id = ?", userID).
		Group("b.isbn, b.title, b.author, b.image_url, i.price").
		Scan(&out).Error
	return out, err
}
