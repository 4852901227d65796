package service

import (
	"context"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"
	"globaltrade/internal/tariff"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate checks request payloads against their struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest maps struct tag violations onto a domain error.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return model.NewDomainError(model.ErrCodeValidation, err.Error())
	}
	return nil
}

// ProductService defines operations for marketplace listings.
type ProductService interface {
	// Search retrieves active listings matching the filter criteria,
	// newest first.
	Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Suggestions returns deduplicated search suggestions for the query
	// text, capped at limit. Queries under two characters yield an empty
	// list without touching the store.
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)

	// GetActiveByID retrieves a single active listing with seller and
	// category details.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ListMine retrieves the session seller's own listings.
	ListMine(ctx context.Context, session auth.Session) ([]model.Product, error)

	// Create submits a new listing for the session seller.
	Create(ctx context.Context, session auth.Session, req *model.ProductRequest) (*model.Product, error)

	// Update edits a listing owned by the session seller.
	Update(ctx context.Context, session auth.Session, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Categories retrieves all categories ordered by name.
	Categories(ctx context.Context) ([]model.Category, error)

	// Countries retrieves the distinct countries across active listings.
	Countries(ctx context.Context) ([]string, error)
}

// AccountService defines signup, login and profile operations.
type AccountService interface {
	// SignUp registers a new user with its trading profile and returns a
	// session token.
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a session token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetProfile retrieves the profile for a user ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// InquiryService defines buyer-to-seller inquiry operations.
type InquiryService interface {
	// Create records an inquiry from the session buyer against a product.
	Create(ctx context.Context, session auth.Session, req *model.InquiryRequest) (*model.Inquiry, error)

	// ListForUser retrieves the session user's side of the inquiry
	// ledger, newest first.
	ListForUser(ctx context.Context, session auth.Session) ([]model.Inquiry, error)

	// UpdateStatus lets the receiving seller move an inquiry through its
	// lifecycle.
	UpdateStatus(ctx context.Context, session auth.Session, id uuid.UUID, req *model.InquiryStatusRequest) error
}

// TariffService defines tariff information and duty estimation operations.
type TariffService interface {
	// ListRecent retrieves the most recently updated tariff rows.
	ListRecent(ctx context.Context, limit int) ([]model.Tariff, error)

	// Countries retrieves the distinct origin and destination countries
	// in the tariff table.
	Countries(ctx context.Context) (origins, destinations []string, err error)

	// Calculate estimates the duty breakdown for an import.
	Calculate(in tariff.DutyInput) tariff.DutyResult

	// ImportSchedules loads tariff schedule files and upserts their rows.
	ImportSchedules(ctx context.Context, paths []string) error
}

// BuyerDashboard aggregates the data behind the buyer dashboard view.
type BuyerDashboard struct {
	Profile             model.Profile   `json:"profile"`
	RecentInquiries     []model.Inquiry `json:"recentInquiries"`
	RecommendedProducts []model.Product `json:"recommendedProducts"`
}

// SellerDashboard aggregates the data behind the seller dashboard view.
type SellerDashboard struct {
	Profile          model.Profile   `json:"profile"`
	Products         []model.Product `json:"products"`
	ActiveProducts   int             `json:"activeProducts"`
	DraftProducts    int             `json:"draftProducts"`
	RecentInquiries  []model.Inquiry `json:"recentInquiries"`
	PendingInquiries int             `json:"pendingInquiries"`
}

// DashboardService assembles the per-role dashboard views.
type DashboardService interface {
	// Buyer builds the dashboard for a buyer session.
	Buyer(ctx context.Context, session auth.Session) (*BuyerDashboard, error)

	// Seller builds the dashboard for a seller session.
	Seller(ctx context.Context, session auth.Session) (*SellerDashboard, error)
}
