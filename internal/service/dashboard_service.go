package service

import (
	"context"
	"fmt"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"
	"globaltrade/internal/repository"

	"github.com/rs/zerolog"
)

// recentInquiryLimit caps the inquiry list shown on dashboards.
const recentInquiryLimit = 5

// recommendedProductLimit caps the featured listings shown to buyers.
const recommendedProductLimit = 6

// dashboardService implements DashboardService.
type dashboardService struct {
	profileRepo repository.ProfileRepository
	productRepo repository.ProductRepository
	inquiryRepo repository.InquiryRepository
	logger      zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	profileRepo repository.ProfileRepository,
	productRepo repository.ProductRepository,
	inquiryRepo repository.InquiryRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		profileRepo: profileRepo,
		productRepo: productRepo,
		inquiryRepo: inquiryRepo,
		logger:      logger.With().Str("service", "dashboard").Logger(),
	}
}

// Buyer builds the dashboard for a buyer session.
func (s *dashboardService) Buyer(ctx context.Context, session auth.Session) (*BuyerDashboard, error) {
	profile, err := s.requireProfile(ctx, session, model.UserTypeBuyer)
	if err != nil {
		return nil, err
	}

	inquiries, err := s.inquiryRepo.ListByBuyer(ctx, session.UserID, recentInquiryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}

	recommended, err := s.productRepo.ListFeatured(ctx, recommendedProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended products: %w", err)
	}

	return &BuyerDashboard{
		Profile:             *profile,
		RecentInquiries:     inquiries,
		RecommendedProducts: recommended,
	}, nil
}

// Seller builds the dashboard for a seller session.
func (s *dashboardService) Seller(ctx context.Context, session auth.Session) (*SellerDashboard, error) {
	profile, err := s.requireProfile(ctx, session, model.UserTypeSeller)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListBySeller(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}

	inquiries, err := s.inquiryRepo.ListBySeller(ctx, session.UserID, recentInquiryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}

	dashboard := &SellerDashboard{
		Profile:         *profile,
		Products:        products,
		RecentInquiries: inquiries,
	}

	for _, p := range products {
		switch p.Status {
		case model.ProductStatusActive:
			dashboard.ActiveProducts++
		case model.ProductStatusDraft:
			dashboard.DraftProducts++
		}
	}
	for _, i := range inquiries {
		if i.Status == model.InquiryStatusPending {
			dashboard.PendingInquiries++
		}
	}

	return dashboard, nil
}

// requireProfile loads the session profile and checks its role.
func (s *dashboardService) requireProfile(ctx context.Context, session auth.Session, userType string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		s.logger.Debug().Str("user_id", session.UserID.String()).Msg("profile not found")
		return nil, model.ErrProfileNotFound
	}
	if profile.UserType != userType {
		if userType == model.UserTypeSeller {
			return nil, model.ErrSellerOnly
		}
		return nil, model.ErrBuyerOnly
	}
	return profile, nil
}
