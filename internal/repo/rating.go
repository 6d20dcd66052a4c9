package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookstore/internal/models"
)

func (r *GormRepo) AddRating(ctx context.Context, userID uint, isbn string, rating int) error {
	row := models.Rating{UserID: userID, ISBN: isbn, Rating: rating}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) RatingFor(ctx context.Context, userID uint, isbn string) (int, error) {
	var row models.Rating
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return row.Rating, nil
}

func (r *GormRepo) CountRatingsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

type ReviewedBook struct {
	ISBN     string  `json:"isbn"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ImageURL string  `json:"image_url"`
	Rating   int     `json:"rating"`
	Price    float64 `json:"price"`
}

func (r *GormRepo) ReviewedBooksByUser(ctx context.Context, userID uint, offset, limit int) ([]ReviewedBook, error) {
	var out []ReviewedBook
	err := r.DB.WithContext(ctx).
		Table("ratings r").
		Select("b.isbn, b.title, b.author, b.image_url, r.rating, COALESCE(i.price, 0) AS price").
		Joins("JOIN books b ON r.isbn = b.isbn").
		Joins("LEFT JOIN inventory_items i ON b.isbn = i.isbn").
		Where("r.user_id = ?", userID).
		Order("r.rating DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, err
}
