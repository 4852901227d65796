package service

import (
	"context"
	"fmt"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"
	"globaltrade/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// minSuggestionQueryLen is the minimum search text length for the
// suggestion lookup; shorter queries return an empty result without
// querying the store.
const minSuggestionQueryLen = 2

// defaultSuggestionLimit caps suggestion results when no limit is given.
const defaultSuggestionLimit = 10

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// Search retrieves active listings matching the filter criteria.
func (s *productService) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("search", filter.Search).
		Msg("searched products")

	return products, nil
}

// Suggestions returns deduplicated search suggestions, titles first, then
// HS codes, then company names, capped at limit.
func (s *productService) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	if len(query) < minSuggestionQueryLen {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	rows, err := s.productRepo.Suggest(ctx, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to fetch suggestions")
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	suggestions := make([]string, 0, limit)
	add := func(value string) {
		if value == "" || seen[value] || len(suggestions) >= limit {
			return
		}
		seen[value] = true
		suggestions = append(suggestions, value)
	}

	for _, row := range rows {
		add(row.Title)
	}
	for _, row := range rows {
		add(row.HSCode)
	}
	for _, row := range rows {
		add(row.CompanyName)
	}

	return suggestions, nil
}

// GetActiveByID retrieves a single active listing.
func (s *productService) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetActiveByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// ListMine retrieves the session seller's own listings.
func (s *productService) ListMine(ctx context.Context, session auth.Session) ([]model.Product, error) {
	if session.UserType != model.UserTypeSeller {
		return nil, model.ErrSellerOnly
	}

	products, err := s.productRepo.ListBySeller(ctx, session.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", session.UserID.String()).Msg("failed to list seller products")
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}

	return products, nil
}

// Create submits a new listing for the session seller.
func (s *productService) Create(ctx context.Context, session auth.Session, req *model.ProductRequest) (*model.Product, error) {
	if session.UserType != model.UserTypeSeller {
		return nil, model.ErrSellerOnly
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := productFromRequest(req)
	product.SellerID = session.UserID

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("seller_id", session.UserID.String()).
		Str("status", product.Status).
		Msg("product created")

	return product, nil
}

// Update edits a listing owned by the session seller.
func (s *productService) Update(ctx context.Context, session auth.Session, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if session.UserType != model.UserTypeSeller {
		return nil, model.ErrSellerOnly
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}
	if existing.SellerID != session.UserID {
		return nil, model.ErrNotOwner
	}

	product := productFromRequest(req)
	product.ID = existing.ID
	product.SellerID = existing.SellerID
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Categories retrieves all categories ordered by name.
func (s *productService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Countries retrieves the distinct countries across active listings.
func (s *productService) Countries(ctx context.Context) ([]string, error) {
	countries, err := s.productRepo.DistinctCountries(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list countries")
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// productFromRequest maps a validated payload onto a listing. Missing
// optional fields take the same defaults the original listing form uses.
func productFromRequest(req *model.ProductRequest) *model.Product {
	product := &model.Product{
		Title:                req.Title,
		Description:          req.Description,
		Price:                req.Price,
		Currency:             req.Currency,
		MinimumOrderQuantity: req.MinimumOrderQuantity,
		Unit:                 req.Unit,
		OriginCountry:        req.OriginCountry,
		HSCode:               req.HSCode,
		Status:               req.Status,
		Featured:             req.Featured,
	}

	if product.Currency == "" {
		product.Currency = "USD"
	}
	if product.Status == "" {
		product.Status = model.ProductStatusDraft
	}
	if req.CategoryID != nil {
		// Already checked by the uuid validation tag.
		id := uuid.MustParse(*req.CategoryID)
		product.CategoryID = &id
	}

	return product
}
