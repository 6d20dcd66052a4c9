package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookstore/internal/models"
)

type BookSummary struct {
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ImageURL      string  `json:"image_url"`
	AverageRating float64 `json:"average_rating"`
	Price         float64 `json:"price"`
}

type BookDetail struct {
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Year          int     `json:"year"`
	Publisher     string  `json:"publisher"`
	ImageURL      string  `json:"image_url"`
	AverageRating float64 `json:"average_rating"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

func (r *GormRepo) bookQuery(ctx context.Context, q string) *gorm.DB {
	query := r.DB.WithContext(ctx).Table("books b")
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"LOWER(b.title) LIKE LOWER(?) OR LOWER(b.author) LIKE LOWER(?) OR b.isbn = ?",
			like, like, q,
		)
	}
	return query
}

func (r *GormRepo) ListBooks(ctx context.Context, q string, offset, limit int) ([]BookSummary, error) {
	var out []BookSummary
	err := r.bookQuery(ctx, q).
		Select("b.isbn, b.title, b.author, b.image_url, COALESCE(AVG(r.rating), 0) AS average_rating, COALESCE(i.price, 0) AS price").
		Joins("LEFT JOIN ratings r ON b.isbn = r.isbn").
		Joins("LEFT JOIN inventory_items i ON b.isbn = i.isbn").
		Group("b.isbn, b.title, b.author, b.image_url, i.price").
		Order("average_rating DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, err
}

func (r *GormRepo) CountBooks(ctx context.Context, q string) (int64, error) {
	var count int64
	err := r.bookQuery(ctx, q).Count(&count).Error
	return count, err
}

func (r *GormRepo) GetBookDetail(ctx context.Context, isbn string) (*BookDetail, error) {
	var detail BookDetail
	res := r.DB.WithContext(ctx).
		Table("books b").
		Select("b.isbn, b.title, b.author, b.year, b.publisher, b.image_url, COALESCE(AVG(r.rating), 0) AS average_rating, COALESCE(i.quantity, 0) AS quantity, COALESCE(i.price, 0) AS price").
		Joins("LEFT JOIN ratings r ON b.isbn = r.isbn").
		Joins("LEFT JOIN inventory_items i ON b.isbn = i.isbn").
		Where("b.isbn = ?", isbn).
		Group("b.isbn, b.title, b.author, b.year, b.publisher, b.image_url, i.quantity, i.price").
		Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || detail.ISBN == "" {
		return nil, ErrNotFound
	}
	return &detail, nil
}

func (r *GormRepo) GetBook(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	res := r.DB.WithContext(ctx).Where("isbn = ?", book.ISBN).FirstOrCreate(book)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *GormRepo) DeleteBook(ctx context.Context, isbn string) error {
	res := r.DB.WithContext(ctx).Where("isbn = ?", isbn).Delete(&models.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
