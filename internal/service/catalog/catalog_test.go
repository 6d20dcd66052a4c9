package catalog_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookstore/internal/config"
	"bookstore/internal/models"
	"bookstore/internal/repo"
	"bookstore/internal/service/catalog"
)

func newService(t *testing.T) (*catalog.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	return &catalog.Service{Repo: repo.New(db)}, db
}

func seedBook(t *testing.T, db *gorm.DB, isbn, title, author string, quantity int, price float64) {
	t.Helper()

	require.NoError(t, db.Create(&models.Book{ISBN: isbn, Title: title, Author: author}).Error)
	require.NoError(t, db.Create(&models.InventoryItem{ISBN: isbn, Quantity: quantity, Price: price}).Error)
}

func TestListBooks(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)
	seedBook(t, db, "222", "Neuromancer", "William Gibson", 2, 7.50)
	seedBook(t, db, "333", "Hyperion", "Dan Simmons", 1, 11.00)
	require.NoError(t, db.Create(&models.Rating{UserID: 1, ISBN: "222", Rating: 9}).Error)
	require.NoError(t, db.Create(&models.Rating{UserID: 2, ISBN: "222", Rating: 7}).Error)

	t.Run("all, best rated first", func(t *testing.T) {
		total, books, err := svc.ListBooks(ctx, "", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, books, 3)
		assert.Equal(t, "222", books[0].ISBN)
		assert.InDelta(t, 8.0, books[0].AverageRating, 0.001)
	})

	t.Run("title filter is case-insensitive", func(t *testing.T) {
		total, books, err := svc.ListBooks(ctx, "dune", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, books, 1)
		assert.Equal(t, "111", books[0].ISBN)
	})

	t.Run("author filter", func(t *testing.T) {
		total, books, err := svc.ListBooks(ctx, "gibson", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, books, 1)
		assert.Equal(t, "Neuromancer", books[0].Title)
	})

	t.Run("exact isbn", func(t *testing.T) {
		total, _, err := svc.ListBooks(ctx, "333", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("pagination window", func(t *testing.T) {
		total, books, err := svc.ListBooks(ctx, "", 1, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, books, 1)
	})

	t.Run("no match", func(t *testing.T) {
		total, books, err := svc.ListBooks(ctx, "tolstoy", 0, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, books)
	})
}

func TestGetBook(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)
	require.NoError(t, db.Create(&models.Rating{UserID: 1, ISBN: "111", Rating: 10}).Error)

	detail, err := svc.GetBook(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Dune", detail.Title)
	assert.Equal(t, 3, detail.Quantity)
	assert.InDelta(t, 9.99, detail.Price, 0.001)
	assert.InDelta(t, 10.0, detail.AverageRating, 0.001)

	_, err = svc.GetBook(ctx, "999")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAddReview(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()
	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)

	require.NoError(t, svc.AddReview(ctx, 1, "111", 8))

	rating, err := svc.ReviewStatus(ctx, 1, "111")
	require.NoError(t, err)
	assert.Equal(t, 8, rating)

	_, err = svc.ReviewStatus(ctx, 2, "111")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.ErrorIs(t, svc.AddReview(ctx, 1, "111", 0), catalog.ErrValidation)
	assert.ErrorIs(t, svc.AddReview(ctx, 1, "111", 11), catalog.ErrValidation)
	assert.ErrorIs(t, svc.AddReview(ctx, 1, "", 5), catalog.ErrValidation)
	assert.ErrorIs(t, svc.AddReview(ctx, 1, "999", 5), catalog.ErrNotFound)
}

func TestMyReviews(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)
	seedBook(t, db, "222", "Neuromancer", "William Gibson", 2, 7.50)
	require.NoError(t, svc.AddReview(ctx, 1, "111", 8))
	require.NoError(t, svc.AddReview(ctx, 1, "222", 6))
	require.NoError(t, svc.AddReview(ctx, 2, "111", 3))

	total, reviews, err := svc.MyReviews(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.NotEmpty(t, r.Title)
	}
}

func TestCartFlow(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)
	seedBook(t, db, "222", "Neuromancer", "William Gibson", 2, 7.50)

	item, err := svc.AddToCart(ctx, 1, "111")
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	_, err = svc.AddToCart(ctx, 1, "222")
	require.NoError(t, err)

	// A second add of the same book queues a second unit.
	_, err = svc.AddToCart(ctx, 1, "111")
	require.NoError(t, err)

	in, err := svc.CartContains(ctx, 1, "111")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = svc.CartContains(ctx, 2, "111")
	require.NoError(t, err)
	assert.False(t, in)

	// The cart view groups per book, so the two queued units of "111"
	// collapse into one row.
	books, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// Removal clears every queued unit of that book.
	require.NoError(t, svc.RemoveFromCart(ctx, 1, "111"))
	in, err = svc.CartContains(ctx, 1, "111")
	require.NoError(t, err)
	assert.False(t, in)

	// Removing an absent book is not an error.
	require.NoError(t, svc.RemoveFromCart(ctx, 1, "999"))

	_, err = svc.AddToCart(ctx, 1, "999")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = svc.AddToCart(ctx, 1, "")
	assert.ErrorIs(t, err, catalog.ErrValidation)
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	book := &models.Book{ISBN: "111", Title: "Dune", Author: "Frank Herbert", Year: 1965}
	require.NoError(t, svc.CreateBook(ctx, book))

	err := svc.CreateBook(ctx, &models.Book{ISBN: "111", Title: "Dune"})
	assert.ErrorIs(t, err, catalog.ErrConflict)

	assert.ErrorIs(t, svc.CreateBook(ctx, &models.Book{Title: "No ISBN"}), catalog.ErrValidation)
	assert.ErrorIs(t, svc.CreateBook(ctx, &models.Book{ISBN: "222"}), catalog.ErrValidation)
}

func TestUpdateInventory(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateBook(ctx, &models.Book{ISBN: "111", Title: "Dune", Author: "Frank Herbert"}))

	price := 14.99
	quantity := 7
	require.NoError(t, svc.UpdateInventory(ctx, "111", &price, &quantity))

	var item models.InventoryItem
	require.NoError(t, db.Where("isbn = ?", "111").First(&item).Error)
	assert.Equal(t, 7, item.Quantity)
	assert.InDelta(t, 14.99, item.Price, 0.001)

	// Partial update leaves the other field alone.
	newQty := 2
	require.NoError(t, svc.UpdateInventory(ctx, "111", nil, &newQty))
	require.NoError(t, db.Where("isbn = ?", "111").First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 14.99, item.Price, 0.001)

	negative := -1
	assert.ErrorIs(t, svc.UpdateInventory(ctx, "111", nil, &negative), catalog.ErrValidation)
	assert.ErrorIs(t, svc.UpdateInventory(ctx, "111", nil, nil), catalog.ErrValidation)
	assert.ErrorIs(t, svc.UpdateInventory(ctx, "999", nil, &quantity), catalog.ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()

	seedBook(t, db, "111", "Dune", "Frank Herbert", 3, 9.99)

	require.NoError(t, svc.DeleteBook(ctx, "111"))
	_, err := svc.GetBook(ctx, "111")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteBook(ctx, "111"), catalog.ErrNotFound)
}
