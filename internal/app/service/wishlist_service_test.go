package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	"github.com/trendora/trendora-backend/internal/db"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{Email: "shopper@example.com", PasswordHash: "hash", Name: "Shopper"}
	testDB.Create(user)

	category := &model.Category{Name: "T-Shirts", Slug: "t-shirts", IsActive: true}
	testDB.Create(category)

	product := &model.Product{
		CategoryID: category.ID, Name: "Graphic Tee", Slug: "graphic-tee",
		Brand: "Basics Co", Price: 350, IsActive: true,
	}
	testDB.Create(product)

	return wishlistService, testDB, user, product
}

func TestWishlistService_AddAndList(t *testing.T) {
	wishlistService, _, user, product := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	items, err := wishlistService.ListWishlist(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Graphic Tee", items[0].Product.Name)
	assert.Equal(t, "T-Shirts", items[0].Product.CategoryName)
}

func TestWishlistService_AddDuplicateRejected(t *testing.T) {
	wishlistService, _, user, product := setupWishlistServiceTest(t)

	_, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemAlreadyExists)
}

func TestWishlistService_AddProductGate(t *testing.T) {
	wishlistService, testDB, user, product := setupWishlistServiceTest(t)

	_, err := wishlistService.AddToWishlist(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	testDB.Model(product).Update("is_active", false)
	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_Remove(t *testing.T) {
	wishlistService, _, user, product := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, wishlistService.RemoveFromWishlist(user.ID, item.ID))

	items, err := wishlistService.ListWishlist(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistService_RemoveForeignEntryLooksMissing(t *testing.T) {
	wishlistService, testDB, user, product := setupWishlistServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other"}
	testDB.Create(other)

	item, err := wishlistService.AddToWishlist(other.ID, product.ID)
	require.NoError(t, err)

	err = wishlistService.RemoveFromWishlist(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)

	// the owner can still remove it
	assert.NoError(t, wishlistService.RemoveFromWishlist(other.ID, item.ID))
}

func TestWishlistService_ListEmpty(t *testing.T) {
	wishlistService, _, user, _ := setupWishlistServiceTest(t)

	items, err := wishlistService.ListWishlist(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
