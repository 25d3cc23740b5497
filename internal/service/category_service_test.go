package service

import (
	"context"
	"testing"

	"voltstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateDuplicate(t *testing.T) {
	catRepo := newStubCategoryRepo("Laptops")
	svc := NewCategoryService(catRepo, newStubStockRepo())

	_, err := svc.Create(context.Background(), "Laptops")
	assert.ErrorIs(t, err, ErrCategoryExists)

	cat, err := svc.Create(context.Background(), "Audio")
	require.NoError(t, err)
	assert.Equal(t, "Audio", cat.Name)
}

func TestCategoryDeleteClearsStockItems(t *testing.T) {
	catRepo := newStubCategoryRepo()
	stockRepo := newStubStockRepo(
		model.StockItem{ID: "1", Name: "Keyboard", UnitPrice: decimal.NewFromInt(3000), Quantity: 10, Category: "Accessories"},
		model.StockItem{ID: "2", Name: "Mouse", UnitPrice: decimal.NewFromInt(250), Quantity: 5, Category: "Accessories"},
		model.StockItem{ID: "3", Name: "MacBook Air M2", UnitPrice: decimal.NewFromInt(145000), Quantity: 8, Category: "Laptops"},
	)
	svc := NewCategoryService(catRepo, stockRepo)
	cat, err := svc.Create(context.Background(), "Accessories")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), cat.ID))

	// Items survive with a blank category; other categories untouched.
	for _, id := range []string{"1", "2"} {
		item, err := stockRepo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "", item.Category)
	}
	laptop, err := stockRepo.FindByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Laptops", laptop.Category)

	cats, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}
