package repository

import (
	"context"

	"globaltrade/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for listing data access operations.
type ProductRepository interface {
	// Search retrieves active listings matching the filter criteria,
	// newest first, with seller and category rows joined in.
	Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Suggest retrieves suggestion source rows (title, HS code, seller
	// company name) for active listings matching the query text.
	Suggest(ctx context.Context, query string, limit int) ([]SuggestionRow, error)

	// GetActiveByID retrieves a single active listing with seller and
	// category rows joined in.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByID retrieves a listing regardless of status (owner access).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ListBySeller retrieves a seller's own listings, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Product, error)

	// ListFeatured retrieves up to limit featured active listings.
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// DistinctCountries retrieves the sorted distinct origin and seller
	// countries across active listings.
	DistinctCountries(ctx context.Context) ([]string, error)

	// Create inserts a new listing.
	Create(ctx context.Context, product *model.Product) error

	// Update persists changes to an existing listing.
	Update(ctx context.Context, product *model.Product) error
}

// SuggestionRow is one source row for the search suggestion endpoint.
type SuggestionRow struct {
	Title       string
	HSCode      string
	CompanyName string
}

// UserRepository defines the interface for authentication records.
type UserRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new user within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, user *model.User) error

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProfileRepository defines the interface for trading company profiles.
type ProfileRepository interface {
	// Create inserts a new profile within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, profile *model.Profile) error

	// GetByID retrieves a profile by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// CategoryRepository defines the interface for product categories.
type CategoryRepository interface {
	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
}

// InquiryRepository defines the interface for buyer-to-seller inquiries.
type InquiryRepository interface {
	// Create inserts a new inquiry.
	Create(ctx context.Context, inquiry *model.Inquiry) error

	// GetByID retrieves an inquiry by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error)

	// ListByBuyer retrieves a buyer's inquiries, newest first, joined with
	// the product and the seller profile. A limit of 0 means no limit.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]model.Inquiry, error)

	// ListBySeller retrieves a seller's inquiries, newest first, joined
	// with the product and the buyer profile. A limit of 0 means no limit.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]model.Inquiry, error)

	// UpdateStatus sets the status of an inquiry.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// TariffRepository defines the interface for published tariff rates.
type TariffRepository interface {
	// ListRecent retrieves the most recently updated tariff rows.
	ListRecent(ctx context.Context, limit int) ([]model.Tariff, error)

	// DistinctCountries retrieves the distinct origin and destination
	// countries present in the tariff table.
	DistinctCountries(ctx context.Context) (origins, destinations []string, err error)

	// Upsert inserts or refreshes tariff rows keyed by
	// (hs_code, origin_country, destination_country). Returns the number
	// of rows written.
	Upsert(ctx context.Context, tariffs []model.Tariff) (int, error)
}
