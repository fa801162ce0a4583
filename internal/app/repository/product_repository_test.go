package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/db"
)

func setupProductRepositoryTest(t *testing.T) (ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewProductRepository(testDB), testDB
}

// seedCatalog builds a small cross-category catalog exercised by most
// filter tests.
func seedCatalog(t *testing.T, testDB *gorm.DB) {
	t.Helper()

	jeans := &model.Category{Name: "Jeans", Slug: "jeans", IsActive: true}
	jackets := &model.Category{Name: "Jackets", Slug: "jackets", IsActive: true}
	testDB.Create(jeans)
	testDB.Create(jackets)

	testDB.Create(&model.Product{
		CategoryID: jeans.ID, Name: "Slim Fit Jeans", Slug: "slim-fit-jeans",
		Brand: "Denimco", Gender: model.GenderMen,
		Price: 1200, DiscountPercent: 20, IsActive: true,
		Variants: []model.ProductVariant{
			{Size: model.SizeM, Color: "Blue", ColorHex: "#1f4fff", Stock: 5, SKU: "SFJ-M-BLU"},
			{Size: model.SizeL, Color: "Blue", ColorHex: "#1f4fff", Stock: 2, SKU: "SFJ-L-BLU"},
			{Size: model.SizeL, Color: "Black", ColorHex: "#000000", Stock: 0, SKU: "SFJ-L-BLK"},
		},
	})
	testDB.Create(&model.Product{
		CategoryID: jeans.ID, Name: "Relaxed Jeans", Slug: "relaxed-jeans",
		Brand: "Denimco", Gender: model.GenderWomen,
		Price: 900, DiscountPercent: 5, IsActive: true,
	})
	testDB.Create(&model.Product{
		CategoryID: jackets.ID, Name: "Wool Coat", Slug: "wool-coat",
		Brand: "Northline", Gender: model.GenderUnisex,
		Price: 2500, DiscountPercent: 0, IsActive: true,
		Description: "Heavy denim-lined winter coat",
	})
	testDB.Create(&model.Product{
		CategoryID: jackets.ID, Name: "Retired Parka", Slug: "retired-parka",
		Brand: "Northline", Price: 3000, IsActive: false,
	})
}

func slugs(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}

func TestProductRepository_FindWithFilter_ActiveOnly(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.NotContains(t, slugs(products), "retired-parka")
}

func TestProductRepository_FindWithFilter_CategorySlug(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, CategorySlug: "jeans"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"slim-fit-jeans", "relaxed-jeans"}, slugs(products))
}

func TestProductRepository_FindWithFilter_PriceWindow(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	min := 900.0
	max := 1200.0
	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	// bounds are inclusive
	assert.ElementsMatch(t, []string{"slim-fit-jeans", "relaxed-jeans"}, slugs(products))
}

func TestProductRepository_FindWithFilter_MinDiscountBoundary(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	tests := []struct {
		minDiscount int
		want        []string
	}{
		{minDiscount: 5, want: []string{"slim-fit-jeans", "relaxed-jeans"}},
		{minDiscount: 10, want: []string{"slim-fit-jeans"}},
		{minDiscount: 20, want: []string{"slim-fit-jeans"}},
		{minDiscount: 30, want: []string{}},
	}

	for _, tt := range tests {
		md := tt.minDiscount
		products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, MinDiscount: &md})
		require.NoError(t, err)
		assert.ElementsMatch(t, tt.want, slugs(products), "min_discount=%d", md)
	}
}

func TestProductRepository_FindWithFilter_BrandCaseInsensitive(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, Brand: "DENIMCO"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_FindWithFilter_VariantFilters(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	// two blue variants must still yield one product row
	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, Color: "blue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"slim-fit-jeans"}, slugs(products))

	products, err = repo.FindWithFilter(ProductFilter{ActiveOnly: true, Size: "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"slim-fit-jeans"}, slugs(products))
}

func TestProductRepository_FindWithFilter_SearchAcrossFields(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	// name match
	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, Search: "slim"})
	require.NoError(t, err)
	assert.Equal(t, []string{"slim-fit-jeans"}, slugs(products))

	// description match
	products, err = repo.FindWithFilter(ProductFilter{ActiveOnly: true, Search: "winter"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wool-coat"}, slugs(products))

	// brand match, case-insensitive
	products, err = repo.FindWithFilter(ProductFilter{ActiveOnly: true, Search: "NORTHLINE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wool-coat"}, slugs(products))

	// category name match
	products, err = repo.FindWithFilter(ProductFilter{ActiveOnly: true, Search: "jackets"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wool-coat"}, slugs(products))
}

func TestProductRepository_FindWithFilter_Ordering(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	products, err := repo.FindWithFilter(ProductFilter{
		ActiveOnly: true, SortBy: ProductSortPrice, SortAscending: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"relaxed-jeans", "slim-fit-jeans", "wool-coat"}, slugs(products))

	products, err = repo.FindWithFilter(ProductFilter{
		ActiveOnly: true, SortBy: ProductSortPrice, SortAscending: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "wool-coat", products[0].Slug)
}

func TestProductRepository_FindWithFilter_UnknownOrderingFallsBack(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	// not in the allow-list: no error, newest-first default applies
	products, err := repo.FindWithFilter(ProductFilter{
		ActiveOnly: true, SortBy: ProductSort("id; DROP TABLE products"),
	})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestProductRepository_FindWithFilter_EmptyResultIsNotError(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	products, err := repo.FindWithFilter(ProductFilter{ActiveOnly: true, Brand: "Nobody"})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_CountWithFilter_IgnoresPagination(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	count, err := repo.CountWithFilter(ProductFilter{ActiveOnly: true, Limit: 1, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestProductRepository_FindBySlug_Preloads(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	product, err := repo.FindBySlug("slim-fit-jeans", true)
	require.NoError(t, err)
	assert.Equal(t, "Jeans", product.Category.Name)
	assert.Len(t, product.Variants, 3)

	_, err = repo.FindBySlug("retired-parka", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// admin path sees inactive products
	product, err = repo.FindBySlug("retired-parka", false)
	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestProductRepository_FindBySlug_VariantsKeepInsertionOrder(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)

	category := &model.Category{Name: "Tees", Slug: "tees", IsActive: true}
	testDB.Create(category)

	// insertion order deliberately disagrees with the (size, color)
	// index order: M comes first, L second
	testDB.Create(&model.Product{
		CategoryID: category.ID, Name: "Basic Tee", Slug: "basic-tee",
		Brand: "Denimco", Price: 500, IsActive: true,
		Variants: []model.ProductVariant{
			{Size: model.SizeM, Color: "Blue", ColorHex: "#1f4fff", Stock: 0, SKU: "BT-M-BLU"},
			{Size: model.SizeL, Color: "Blue", ColorHex: "#1f4fff", Stock: 5, SKU: "BT-L-BLU"},
		},
	})

	product, err := repo.FindBySlug("basic-tee", true)
	require.NoError(t, err)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, "BT-M-BLU", product.Variants[0].SKU)
	assert.Equal(t, "BT-L-BLU", product.Variants[1].SKU)
}

func TestProductRepository_Delete_RemovesChildren(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedCatalog(t, testDB)

	product, err := repo.FindBySlug("slim-fit-jeans", true)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(product.ID))

	var variantCount int64
	testDB.Model(&model.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variantCount)
	assert.Equal(t, int64(0), variantCount)

	_, err = repo.FindBySlug("slim-fit-jeans", false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
