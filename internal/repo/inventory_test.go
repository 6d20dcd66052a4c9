package repo_test

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
)

func newRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	return repo.New(db), db
}

func TestDecrementInventory_Guard(t *testing.T) {
	t.Parallel()

	r, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.InventoryItem{ISBN: "111", Quantity: 2, Price: 9.99}).Error)

	require.NoError(t, r.DecrementInventory(ctx, "111", 1))
	require.NoError(t, r.DecrementInventory(ctx, "111", 1))

	// Stock is exhausted: the guard refuses to go below zero.
	err := r.DecrementInventory(ctx, "111", 1)
	assert.ErrorIs(t, err, repo.ErrConflict)

	item, err := r.GetInventory(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestDecrementInventory_InvalidAmount(t *testing.T) {
	t.Parallel()

	r, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.InventoryItem{ISBN: "111", Quantity: 2, Price: 9.99}).Error)

	assert.ErrorIs(t, r.DecrementInventory(ctx, "111", 0), repo.ErrConflict)
	assert.ErrorIs(t, r.DecrementInventory(ctx, "111", -1), repo.ErrConflict)

	item, err := r.GetInventory(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestDecrementInventory_UnknownISBN(t *testing.T) {
	t.Parallel()

	r, _ := newRepo(t)
	assert.ErrorIs(t, r.DecrementInventory(context.Background(), "999", 1), repo.ErrConflict)
}

func TestGetInventory_NotFound(t *testing.T) {
	t.Parallel()

	r, _ := newRepo(t)
	_, err := r.GetInventory(context.Background(), "999")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	t.Parallel()

	r, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.InventoryItem{ISBN: "111", Quantity: 5, Price: 9.99}).Error)

	sentinel := assert.AnError
	err := r.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.DecrementInventory(ctx, "111", 3); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	item, err := r.GetInventory(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}
