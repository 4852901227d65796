package integration

import (
	"context"
	"testing"

	"globaltrade/internal/model"
	"globaltrade/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Search_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	// One verified German seller, one unverified Chinese seller.
	verified := SeedAccount(t, testDB.Pool, "seller", "Rhein Metals GmbH", "Germany", true)
	unverified := SeedAccount(t, testDB.Pool, "seller", "Shenzhen Trading Co", "China", false)
	metals := SeedCategory(t, testDB.Pool, "Metals", "metals")

	SeedProduct(t, testDB.Pool, SeedProductRow{
		SellerID: verified.ID, CategoryID: &metals,
		Title: "Steel pipes", Description: "Seamless carbon steel pipes",
		Price: 120, OriginCountry: "Germany", HSCode: "730421",
		Status: "active",
	})
	SeedProduct(t, testDB.Pool, SeedProductRow{
		SellerID: unverified.ID, CategoryID: &metals,
		Title: "Copper wire", Description: "Enamelled copper winding wire",
		Price: 45, OriginCountry: "China", HSCode: "854411",
		Status: "active", Featured: true,
	})
	SeedProduct(t, testDB.Pool, SeedProductRow{
		SellerID: verified.ID,
		Title:    "Aluminium sheets", Description: "Cold rolled aluminium",
		Price: 80, OriginCountry: "Germany", HSCode: "760611",
		Status: "draft",
	})

	t.Run("only active listings are returned", func(t *testing.T) {
		products, err := repo.Search(ctx, model.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, model.ProductStatusActive, p.Status)
		}
	})

	t.Run("search matches title, description and HS code", func(t *testing.T) {
		byTitle, err := repo.Search(ctx, model.ProductFilter{Search: "steel"})
		require.NoError(t, err)
		require.Len(t, byTitle, 1)
		assert.Equal(t, "Steel pipes", byTitle[0].Title)

		byHSCode, err := repo.Search(ctx, model.ProductFilter{Search: "8544"})
		require.NoError(t, err)
		require.Len(t, byHSCode, 1)
		assert.Equal(t, "Copper wire", byHSCode[0].Title)
	})

	t.Run("verified filter applies to the joined seller profile", func(t *testing.T) {
		products, err := repo.Search(ctx, model.ProductFilter{VerifiedOnly: true})
		require.NoError(t, err)
		require.Len(t, products, 1)
		require.NotNil(t, products[0].Seller)
		assert.True(t, products[0].Seller.Verified)
		assert.Equal(t, "Rhein Metals GmbH", products[0].Seller.CompanyName)
	})

	t.Run("country matches origin or seller country", func(t *testing.T) {
		products, err := repo.Search(ctx, model.ProductFilter{Country: "China"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Copper wire", products[0].Title)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min, max := 45.0, 120.0
		products, err := repo.Search(ctx, model.ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		tight := 46.0
		products, err = repo.Search(ctx, model.ProductFilter{MinPrice: &tight})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Steel pipes", products[0].Title)
	})

	t.Run("featured filter", func(t *testing.T) {
		products, err := repo.Search(ctx, model.ProductFilter{FeaturedOnly: true})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.True(t, products[0].Featured)
	})

	t.Run("results are ordered newest first", func(t *testing.T) {
		products, err := repo.Search(ctx, model.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.False(t, products[0].CreatedAt.Before(products[1].CreatedAt))
	})

	t.Run("suggestions cover titles, HS codes and company names", func(t *testing.T) {
		rows, err := repo.Suggest(ctx, "copper", 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Copper wire", rows[0].Title)
		assert.Equal(t, "854411", rows[0].HSCode)
		assert.Equal(t, "Shenzhen Trading Co", rows[0].CompanyName)

		byCompany, err := repo.Suggest(ctx, "rhein", 10)
		require.NoError(t, err)
		require.Len(t, byCompany, 1)
	})

	t.Run("distinct countries cover origin and seller countries", func(t *testing.T) {
		countries, err := repo.DistinctCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"China", "Germany"}, countries)
	})

	t.Run("GetActiveByID hides inactive listings", func(t *testing.T) {
		draft := SeedProduct(t, testDB.Pool, SeedProductRow{
			SellerID: verified.ID,
			Title:    "Hidden listing", Description: "Not yet public",
			Status: "draft",
		})

		product, err := repo.GetActiveByID(ctx, draft)
		require.NoError(t, err)
		assert.Nil(t, product)

		// Owner access still sees it.
		owned, err := repo.GetByID(ctx, draft)
		require.NoError(t, err)
		require.NotNil(t, owned)
		assert.Equal(t, "Hidden listing", owned.Title)
	})
}

func TestInquiryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	inquiries := repository.NewInquiryRepository(testDB.Pool, logger)

	ctx := context.Background()

	seller := SeedAccount(t, testDB.Pool, "seller", "Export Co", "Germany", true)
	buyer := SeedAccount(t, testDB.Pool, "buyer", "Import Co", "France", false)
	productID := SeedProduct(t, testDB.Pool, SeedProductRow{
		SellerID: seller.ID,
		Title:    "Steel pipes", Description: "Seamless",
		Price: 120, Status: "active",
	})

	quantity := 500
	inquiry := &model.Inquiry{
		ProductID: productID,
		BuyerID:   buyer.ID,
		SellerID:  seller.ID,
		Message:   "What is your lead time for 500 units?",
		Quantity:  &quantity,
		Currency:  "USD",
		Status:    model.InquiryStatusPending,
	}
	require.NoError(t, inquiries.Create(ctx, inquiry))
	require.NotEqual(t, uuid.Nil, inquiry.ID)

	t.Run("buyer listing joins product and counterparty", func(t *testing.T) {
		list, err := inquiries.ListByBuyer(ctx, buyer.ID, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].Product)
		assert.Equal(t, "Steel pipes", list[0].Product.Title)
		require.NotNil(t, list[0].Counterparty)
		assert.Equal(t, "Export Co", list[0].Counterparty.CompanyName)
	})

	t.Run("seller listing shows the buyer as counterparty", func(t *testing.T) {
		list, err := inquiries.ListBySeller(ctx, seller.ID, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].Counterparty)
		assert.Equal(t, "Import Co", list[0].Counterparty.CompanyName)
	})

	t.Run("status updates persist", func(t *testing.T) {
		require.NoError(t, inquiries.UpdateStatus(ctx, inquiry.ID, model.InquiryStatusResponded))

		got, err := inquiries.GetByID(ctx, inquiry.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.InquiryStatusResponded, got.Status)
	})

	t.Run("updating a missing inquiry reports not found", func(t *testing.T) {
		err := inquiries.UpdateStatus(ctx, uuid.New(), model.InquiryStatusClosed)
		assert.Equal(t, model.ErrInquiryNotFound, err)
	})
}

func TestTariffRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	tariffs := repository.NewTariffRepository(testDB.Pool, logger)

	ctx := context.Background()

	rate := decimal.RequireFromString("7.5")
	rows := []model.Tariff{
		{HSCode: "850440", OriginCountry: "China", DestinationCountry: "United States", TariffRate: rate, TradeAgreement: "Section 301"},
		{HSCode: "850440", OriginCountry: "Germany", DestinationCountry: "United States", TariffRate: decimal.RequireFromString("1.5"), TradeAgreement: "MFN"},
	}

	t.Run("upsert inserts and refreshes by trade lane", func(t *testing.T) {
		written, err := tariffs.Upsert(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		// Re-importing the same lane updates rather than duplicating.
		updated := []model.Tariff{
			{HSCode: "850440", OriginCountry: "China", DestinationCountry: "United States", TariffRate: decimal.RequireFromString("10"), TradeAgreement: "Section 301"},
		}
		written, err = tariffs.Upsert(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		listed, err := tariffs.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("distinct countries split origins and destinations", func(t *testing.T) {
		origins, destinations, err := tariffs.DistinctCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"China", "Germany"}, origins)
		assert.Equal(t, []string{"United States"}, destinations)
	})
}
