package repository

import (
	"context"
	"fmt"

	"globaltrade/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// inquiryRepository implements the InquiryRepository interface using PostgreSQL.
type inquiryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInquiryRepository creates a new PostgreSQL-backed inquiry repository.
func NewInquiryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InquiryRepository {
	return &inquiryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inquiry").Logger(),
	}
}

// Create inserts a new inquiry.
func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	query := `
		INSERT INTO inquiries (product_id, buyer_id, seller_id, message, quantity, target_price, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		inquiry.ProductID, inquiry.BuyerID, inquiry.SellerID, inquiry.Message,
		inquiry.Quantity, inquiry.TargetPrice, inquiry.Currency, inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt, &inquiry.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", inquiry.ProductID.String()).
			Msg("failed to insert inquiry")
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}

	return nil
}

// GetByID retrieves an inquiry by its ID.
func (r *inquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	query := `
		SELECT id, product_id, buyer_id, seller_id, message, quantity,
		       target_price, currency, status, created_at, updated_at
		FROM inquiries
		WHERE id = $1
	`

	var i model.Inquiry
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.ProductID, &i.BuyerID, &i.SellerID, &i.Message, &i.Quantity,
		&i.TargetPrice, &i.Currency, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("inquiry_id", id.String()).Msg("inquiry not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("inquiry_id", id.String()).Msg("failed to query inquiry")
		return nil, fmt.Errorf("failed to query inquiry: %w", err)
	}

	return &i, nil
}

// ListByBuyer retrieves a buyer's inquiries, newest first, joined with the
// product and the seller profile.
func (r *inquiryRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]model.Inquiry, error) {
	return r.list(ctx, "buyer_id", "seller_id", buyerID, limit)
}

// ListBySeller retrieves a seller's inquiries, newest first, joined with
// the product and the buyer profile.
func (r *inquiryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]model.Inquiry, error) {
	return r.list(ctx, "seller_id", "buyer_id", sellerID, limit)
}

// list fetches one side of the inquiry ledger. ownColumn selects whose
// inquiries to list; counterpartyColumn selects which profile to join as
// the counterparty.
func (r *inquiryRepository) list(ctx context.Context, ownColumn, counterpartyColumn string, id uuid.UUID, limit int) ([]model.Inquiry, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.product_id, i.buyer_id, i.seller_id, i.message, i.quantity,
		       i.target_price, i.currency, i.status, i.created_at, i.updated_at,
		       p.title, p.price, p.currency,
		       c.full_name, c.company_name, c.country, c.verified
		FROM inquiries i
		JOIN products p ON p.id = i.product_id
		JOIN profiles c ON c.id = i.%s
		WHERE i.%s = $1
		ORDER BY i.created_at DESC
	`, counterpartyColumn, ownColumn)

	args := []any{id}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("failed to query inquiries")
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []model.Inquiry
	for rows.Next() {
		var (
			i            model.Inquiry
			product      model.InquiryProduct
			counterparty model.SellerSummary
		)
		err := rows.Scan(
			&i.ID, &i.ProductID, &i.BuyerID, &i.SellerID, &i.Message, &i.Quantity,
			&i.TargetPrice, &i.Currency, &i.Status, &i.CreatedAt, &i.UpdatedAt,
			&product.Title, &product.Price, &product.Currency,
			&counterparty.FullName, &counterparty.CompanyName,
			&counterparty.Country, &counterparty.Verified,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan inquiry row")
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		i.Product = &product
		i.Counterparty = &counterparty
		inquiries = append(inquiries, i)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating inquiry rows")
		return nil, fmt.Errorf("error iterating inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateStatus sets the status of an inquiry.
func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE inquiries
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("inquiry_id", id.String()).Msg("failed to update inquiry status")
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrInquiryNotFound
	}

	return nil
}
