package repository

import (
	"testing"
	"time"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*gorm.DB, CatalogRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCatalogRepository(testDB)
	return testDB, repo
}

func createCatalogProduct(t *testing.T, testDB *gorm.DB, name string, price float64, season model.ProductSeason, variants []model.Variant, tagNames ...string) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		BasePrice: price,
		Season:    season,
	}
	err := NewProductRepository(testDB).Create(product, variants, tagNames)
	require.NoError(t, err)
	return product
}

func createPriceRule(t *testing.T, testDB *gorm.DB, tagName, eventName string, percent float64, startsAt, endsAt *time.Time) *model.PriceRule {
	t.Helper()

	tag, err := NewProductRepository(testDB).FindOrCreateTag(tagName)
	require.NoError(t, err)

	rule := &model.PriceRule{
		TagID:           tag.ID,
		EventName:       eventName,
		DiscountPercent: percent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		Active:          true,
	}
	require.NoError(t, testDB.Create(rule).Error)
	return rule
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCatalogRepository_Select_NoFilter(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Wool Scarf", 25, model.SeasonWinter, nil)
	createCatalogProduct(t, testDB, "Linen Shirt", 40, model.SeasonSummer, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	// Newest product first
	assert.Equal(t, "Linen Shirt", products[0].Name)
	assert.Equal(t, "Wool Scarf", products[1].Name)
}

func TestCatalogRepository_Select_ExcludesSoftDeleted(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	keep := createCatalogProduct(t, testDB, "Keep Me", 10, model.SeasonNeutral, nil)
	gone := createCatalogProduct(t, testDB, "Delete Me", 10, model.SeasonNeutral, nil)

	require.NoError(t, NewProductRepository(testDB).SoftDelete(gone.ID))

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, keep.ID, products[0].ID)

	// A direct id lookup is filtered too
	products, err = repo.Select(CatalogFilter{ID: &gone.ID})
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogRepository_Select_NamePattern(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Winter Jacket", 80, model.SeasonWinter, nil)
	createCatalogProduct(t, testDB, "Summer Dress", 35, model.SeasonSummer, nil)

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"exact substring", "Jacket", 1},
		{"case insensitive", "jACKet", 1},
		{"partial middle", "inter", 1},
		{"no match", "boots", 0},
		{"matches both", "er", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.Select(CatalogFilter{NamePattern: tt.pattern})
			assert.NoError(t, err)
			assert.Len(t, products, tt.want)
		})
	}
}

func TestCatalogRepository_Select_SizeFilterDeduplicates(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	// Two M variants of the same product: the join fans it out to two rows,
	// the result must still contain the product once.
	createCatalogProduct(t, testDB, "Basic Tee", 15, model.SeasonNeutral, []model.Variant{
		{Color: "Red", Size: "M", Stock: 5},
		{Color: "Blue", Size: "M", Stock: 3},
		{Color: "Red", Size: "L", Stock: 2},
	})
	createCatalogProduct(t, testDB, "Slim Jeans", 55, model.SeasonNeutral, []model.Variant{
		{Color: "Black", Size: "L", Stock: 4},
	})

	products, err := repo.Select(CatalogFilter{Size: "M"})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Basic Tee", products[0].Name)
	// Stock total still covers every variant, not just the matching size
	assert.Equal(t, 10, products[0].StockTotal)
}

func TestCatalogRepository_Select_TagFilter(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Puffer Coat", 120, model.SeasonWinter, nil, "winter", "offer")
	createCatalogProduct(t, testDB, "Swim Shorts", 20, model.SeasonSummer, nil, "summer")

	products, err := repo.Select(CatalogFilter{Tag: "offer"})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Puffer Coat", products[0].Name)

	products, err = repo.Select(CatalogFilter{Tag: "clearance"})
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogRepository_Select_SeasonIncludesNeutral(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Parka", 150, model.SeasonWinter, nil)
	createCatalogProduct(t, testDB, "Sandals", 18, model.SeasonSummer, nil)
	createCatalogProduct(t, testDB, "Plain Cap", 12, model.SeasonNeutral, nil)

	products, err := repo.Select(CatalogFilter{Season: string(model.SeasonWinter)})
	assert.NoError(t, err)
	require.Len(t, products, 2)

	names := []string{products[0].Name, products[1].Name}
	assert.Contains(t, names, "Parka")
	assert.Contains(t, names, "Plain Cap")
	assert.NotContains(t, names, "Sandals")
}

func TestCatalogRepository_Select_StockTotals(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Hoodie", 45, model.SeasonNeutral, []model.Variant{
		{Color: "Gray", Size: "S", Stock: 2},
		{Color: "Gray", Size: "M", Stock: 7},
		{Color: "Black", Size: "M", Stock: 1},
	})
	createCatalogProduct(t, testDB, "No Stock Yet", 30, model.SeasonNeutral, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 2)

	byName := map[string]PricedProduct{}
	for _, p := range products {
		byName[p.Name] = p
	}
	assert.Equal(t, 10, byName["Hoodie"].StockTotal)
	// A product without variants reports zero, it is not dropped
	assert.Equal(t, 0, byName["No Stock Yet"].StockTotal)
}

func TestCatalogRepository_Select_TagsNeverNil(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Untagged", 10, model.SeasonNeutral, nil)
	createCatalogProduct(t, testDB, "Tagged", 10, model.SeasonNeutral, nil, "new", "offer")

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 2)

	byName := map[string]PricedProduct{}
	for _, p := range products {
		byName[p.Name] = p
	}
	assert.NotNil(t, byName["Untagged"].Tags)
	assert.Empty(t, byName["Untagged"].Tags)
	assert.ElementsMatch(t, []string{"new", "offer"}, byName["Tagged"].Tags)
}

func TestCatalogRepository_Select_EffectivePrice(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Festive Sweater", 100, model.SeasonWinter, nil, "christmas")
	createPriceRule(t, testDB, "christmas", "Christmas Sale", 20, nil, timePtr(time.Now().Add(24*time.Hour)))

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, float64(100), products[0].BasePrice)
	assert.InDelta(t, 80, products[0].EffectivePrice, 0.001)
	assert.Equal(t, float64(20), products[0].DiscountPercent)
	assert.Equal(t, "Christmas Sale", products[0].ActiveEvent)
}

func TestCatalogRepository_Select_ExpiredRuleRestoresBasePrice(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Festive Sweater", 100, model.SeasonWinter, nil, "christmas")
	createPriceRule(t, testDB, "christmas", "Christmas Sale", 20,
		timePtr(time.Now().Add(-48*time.Hour)), timePtr(time.Now().Add(-24*time.Hour)))

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	assert.InDelta(t, 100, products[0].EffectivePrice, 0.001)
	assert.Zero(t, products[0].DiscountPercent)
	assert.Empty(t, products[0].ActiveEvent)
}

func TestCatalogRepository_Select_BestDiscountWins(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Boots", 200, model.SeasonWinter, nil, "winter", "offer")
	createPriceRule(t, testDB, "winter", "Winter Event", 10, nil, nil)
	createPriceRule(t, testDB, "offer", "Mega Offer", 30, nil, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	assert.InDelta(t, 140, products[0].EffectivePrice, 0.001)
	assert.Equal(t, float64(30), products[0].DiscountPercent)
	assert.Equal(t, "Mega Offer", products[0].ActiveEvent)
}

func TestCatalogRepository_Select_EqualDiscountTieIsDeterministic(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Gloves", 50, model.SeasonWinter, nil, "winter", "offer")
	first := createPriceRule(t, testDB, "winter", "Winter Event", 25, nil, nil)
	createPriceRule(t, testDB, "offer", "Flash Offer", 25, nil, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	// Same percentage either way; the earlier rule is the one reported.
	assert.InDelta(t, 37.5, products[0].EffectivePrice, 0.001)
	assert.Equal(t, float64(25), products[0].DiscountPercent)
	assert.Equal(t, first.EventName, products[0].ActiveEvent)
}

func TestCatalogRepository_Select_IgnoresInactiveAndFutureRules(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Raincoat", 60, model.SeasonNeutral, nil, "offer")

	inactive := createPriceRule(t, testDB, "offer", "Disabled Sale", 50, nil, nil)
	require.NoError(t, testDB.Model(inactive).Update("active", false).Error)
	createPriceRule(t, testDB, "offer", "Next Month", 40, timePtr(time.Now().Add(720*time.Hour)), nil)
	createPriceRule(t, testDB, "offer", "Running Now", 10, nil, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, float64(10), products[0].DiscountPercent)
	assert.Equal(t, "Running Now", products[0].ActiveEvent)
	assert.InDelta(t, 54, products[0].EffectivePrice, 0.001)
}

func TestCatalogRepository_Select_FullDiscountPriceIsZero(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createCatalogProduct(t, testDB, "Giveaway Pin", 5, model.SeasonNeutral, nil, "offer")
	createPriceRule(t, testDB, "offer", "Free Promo", 100, nil, nil)

	products, err := repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	require.Len(t, products, 1)

	assert.InDelta(t, 0, products[0].EffectivePrice, 0.001)
	assert.GreaterOrEqual(t, products[0].EffectivePrice, 0.0)
}

func TestCatalogRepository_Select_Pagination(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	first := createCatalogProduct(t, testDB, "First", 10, model.SeasonNeutral, nil)
	second := createCatalogProduct(t, testDB, "Second", 10, model.SeasonNeutral, nil)
	third := createCatalogProduct(t, testDB, "Third", 10, model.SeasonNeutral, nil)

	// id DESC: page 1 carries the newest product
	products, err := repo.Select(CatalogFilter{Page: 1, PageSize: 1})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, third.ID, products[0].ID)

	products, err = repo.Select(CatalogFilter{Page: 2, PageSize: 1})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, second.ID, products[0].ID)

	// Past the end
	products, err = repo.Select(CatalogFilter{Page: 4, PageSize: 1})
	assert.NoError(t, err)
	assert.Empty(t, products)

	// Zero values fall back to defaults: one page holds everything here
	products, err = repo.Select(CatalogFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, first.ID, products[2].ID)
}

func TestCatalogRepository_Select_IDLookupBypassesPaging(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	oldest := createCatalogProduct(t, testDB, "Oldest", 10, model.SeasonNeutral, nil)
	createCatalogProduct(t, testDB, "Newer", 10, model.SeasonNeutral, nil)

	// Page settings that would exclude the oldest product must not matter
	products, err := repo.Select(CatalogFilter{ID: &oldest.ID, Page: 99, PageSize: 1})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, oldest.ID, products[0].ID)
}

func TestCatalogRepository_FindVariants(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	product := createCatalogProduct(t, testDB, "Tee", 15, model.SeasonNeutral, []model.Variant{
		{Color: "Red", Size: "M", Stock: 5},
		{Color: "Blue", Size: "L", Stock: 2},
		{Color: "Blue", Size: "S", Stock: 1},
	})

	variants, err := repo.FindVariants(product.ID)
	assert.NoError(t, err)
	require.Len(t, variants, 3)
	// Ordered by color then size
	assert.Equal(t, "Blue", variants[0].Color)
	assert.Equal(t, "L", variants[0].Size)
	assert.Equal(t, "Blue", variants[1].Color)
	assert.Equal(t, "S", variants[1].Size)
	assert.Equal(t, "Red", variants[2].Color)

	variants, err = repo.FindVariants(9999)
	assert.NoError(t, err)
	assert.Empty(t, variants)
}

func TestCatalogRepository_IncrementViewCount(t *testing.T) {
	testDB, repo := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	product := createCatalogProduct(t, testDB, "Counted", 10, model.SeasonNeutral, nil)

	require.NoError(t, repo.IncrementViewCount(product.ID))
	require.NoError(t, repo.IncrementViewCount(product.ID))

	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.ViewCount)
}
