package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/models"
	"bookstore/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

type Service struct {
	Repo *repo.GormRepo
}

func (s *Service) ListBooks(ctx context.Context, q string, offset, limit int) (int64, []repo.BookSummary, error) {
	total, err := s.Repo.CountBooks(ctx, q)
	if err != nil {
		return 0, nil, err
	}
	books, err := s.Repo.ListBooks(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, books, nil
}

func (s *Service) GetBook(ctx context.Context, isbn string) (*repo.BookDetail, error) {
	detail, err := s.Repo.GetBookDetail(ctx, isbn)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("%w: book %s", ErrNotFound, isbn)
	}
	return detail, err
}

func (s *Service) AddReview(ctx context.Context, userID uint, isbn string, rating int) error {
	if isbn == "" {
		return fmt.Errorf("%w: isbn required", ErrValidation)
	}
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 1 and 10", ErrValidation)
	}
	if _, err := s.Repo.GetBook(ctx, isbn); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: book %s", ErrNotFound, isbn)
		}
		return err
	}
	return s.Repo.AddRating(ctx, userID, isbn, rating)
}

// ReviewStatus reports the caller's rating for a book, or ErrNotFound
// if they have not reviewed it.
func (s *Service) ReviewStatus(ctx context.Context, userID uint, isbn string) (int, error) {
	rating, err := s.Repo.RatingFor(ctx, userID, isbn)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrNotFound
	}
	return rating, err
}

func (s *Service) MyReviews(ctx context.Context, userID uint, offset, limit int) (int64, []repo.ReviewedBook, error) {
	total, err := s.Repo.CountRatingsByUser(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	reviews, err := s.Repo.ReviewedBooksByUser(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}

func (s *Service) AddToCart(ctx context.Context, userID uint, isbn string) (*models.CartItem, error) {
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn required", ErrValidation)
	}
	if _, err := s.Repo.GetBook(ctx, isbn); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: book %s", ErrNotFound, isbn)
		}
		return nil, err
	}
	return s.Repo.AddCartEntry(ctx, userID, isbn)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID uint, isbn string) error {
	if isbn == "" {
		return fmt.Errorf("%w: isbn required", ErrValidation)
	}
	return s.Repo.RemoveCartEntry(ctx, userID, isbn)
}

func (s *Service) GetCart(ctx context.Context, userID uint) ([]repo.BookSummary, error) {
	return s.Repo.CartBooks(ctx, userID)
}

func (s *Service) CartContains(ctx context.Context, userID uint, isbn string) (bool, error) {
	return s.Repo.CartContains(ctx, userID, isbn)
}

func (s *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if book.ISBN == "" || book.Title == "" {
		return fmt.Errorf("%w: isbn and title required", ErrValidation)
	}
	err := s.Repo.CreateBook(ctx, book)
	if errors.Is(err, repo.ErrConflict) {
		return fmt.Errorf("%w: book %s already exists", ErrConflict, book.ISBN)
	}
	return err
}

func (s *Service) UpdateInventory(ctx context.Context, isbn string, price *float64, quantity *int) error {
	if price == nil && quantity == nil {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if quantity != nil && *quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if _, err := s.Repo.GetBook(ctx, isbn); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: book %s", ErrNotFound, isbn)
		}
		return err
	}
	return s.Repo.UpsertInventory(ctx, isbn, price, quantity)
}

func (s *Service) DeleteBook(ctx context.Context, isbn string) error {
	err := s.Repo.DeleteBook(ctx, isbn)
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%w: book %s", ErrNotFound, isbn)
	}
	return err
}
