package repository

import (
	"context"
	"fmt"

	"globaltrade/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Search retrieves active listings matching the filter criteria, newest first.
func (r *productRepository) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query, args, err := buildProductSearch(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// Suggest retrieves suggestion source rows for active listings matching the
// query text.
func (r *productRepository) Suggest(ctx context.Context, query string, limit int) ([]SuggestionRow, error) {
	sql, args, err := buildSuggestionQuery(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to query suggestions")
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var results []SuggestionRow
	for rows.Next() {
		var s SuggestionRow
		if err := rows.Scan(&s.Title, &s.HSCode, &s.CompanyName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan suggestion row")
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating suggestion rows")
		return nil, fmt.Errorf("error iterating suggestions: %w", err)
	}

	return results, nil
}

// GetActiveByID retrieves a single active listing with joined rows.
func (r *productRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query, args, err := psql.Select(productSearchColumns...).
		From("products p").
		Join("profiles s ON s.id = p.seller_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.id": id, "p.status": model.ProductStatusActive}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build detail query: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByID retrieves a listing regardless of status.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, seller_id, category_id, title, description, price, currency,
		       minimum_order_quantity, unit, origin_country, hs_code, status,
		       featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description, &p.Price,
		&p.Currency, &p.MinimumOrderQuantity, &p.Unit, &p.OriginCountry,
		&p.HSCode, &p.Status, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// ListBySeller retrieves a seller's own listings, newest first.
func (r *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Product, error) {
	query, args, err := psql.Select(productSearchColumns...).
		From("products p").
		Join("profiles s ON s.id = p.seller_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.seller_id": sellerID}).
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build seller listing query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID.String()).Msg("failed to query seller products")
		return nil, fmt.Errorf("failed to query seller products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// ListFeatured retrieves up to limit featured active listings.
func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	query, args, err := psql.Select(productSearchColumns...).
		From("products p").
		Join("profiles s ON s.id = p.seller_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.status": model.ProductStatusActive, "p.featured": true}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build featured listing query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query featured products")
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// DistinctCountries retrieves the sorted distinct origin and seller
// countries across active listings.
func (r *productRepository) DistinctCountries(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT country FROM (
			SELECT origin_country AS country
			FROM products
			WHERE status = 'active' AND origin_country <> ''
			UNION
			SELECT s.country
			FROM products p
			JOIN profiles s ON s.id = p.seller_id
			WHERE p.status = 'active' AND s.country <> ''
		) AS countries
		ORDER BY country
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query countries")
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	return countries, nil
}

// Create inserts a new listing.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (
			seller_id, category_id, title, description, price, currency,
			minimum_order_quantity, unit, origin_country, hs_code, status, featured
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.SellerID, product.CategoryID, product.Title, product.Description,
		product.Price, product.Currency, product.MinimumOrderQuantity, product.Unit,
		product.OriginCountry, product.HSCode, product.Status, product.Featured,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("title", product.Title).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update persists changes to an existing listing.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, title = $3, description = $4, price = $5,
		    currency = $6, minimum_order_quantity = $7, unit = $8,
		    origin_country = $9, hs_code = $10, status = $11, featured = $12,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.CategoryID, product.Title, product.Description,
		product.Price, product.Currency, product.MinimumOrderQuantity, product.Unit,
		product.OriginCountry, product.HSCode, product.Status, product.Featured,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// collectProducts scans all rows of a search-shaped result set.
func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanProduct scans one search-shaped row, folding the joined seller and
// category columns into the product.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p            model.Product
		seller       model.SellerSummary
		categoryName *string
	)

	err := row.Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description, &p.Price,
		&p.Currency, &p.MinimumOrderQuantity, &p.Unit, &p.OriginCountry,
		&p.HSCode, &p.Status, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
		&seller.FullName, &seller.CompanyName, &seller.Country, &seller.Verified,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}

	p.Seller = &seller
	if categoryName != nil {
		p.Category = &model.CategorySummary{Name: *categoryName}
	}

	return &p, nil
}
