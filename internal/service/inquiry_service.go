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

// inquiryService implements InquiryService.
type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewInquiryService creates a new inquiry service.
func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "inquiry").Logger(),
	}
}

// Create records an inquiry from the session buyer against a product. The
// inquiry is routed to the product's seller.
func (s *inquiryService) Create(ctx context.Context, session auth.Session, req *model.InquiryRequest) (*model.Inquiry, error) {
	if session.UserType != model.UserTypeBuyer {
		return nil, model.ErrBuyerOnly
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	productID := uuid.MustParse(req.ProductID)
	product, err := s.productRepo.GetActiveByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	currency := req.Currency
	if currency == "" {
		currency = product.Currency
	}

	inquiry := &model.Inquiry{
		ProductID:   product.ID,
		BuyerID:     session.UserID,
		SellerID:    product.SellerID,
		Message:     req.Message,
		Quantity:    req.Quantity,
		TargetPrice: req.TargetPrice,
		Currency:    currency,
		Status:      model.InquiryStatusPending,
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		s.logger.Error().Err(err).
			Str("product_id", product.ID.String()).
			Msg("failed to create inquiry")
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.logger.Info().
		Str("inquiry_id", inquiry.ID.String()).
		Str("buyer_id", session.UserID.String()).
		Str("seller_id", product.SellerID.String()).
		Msg("inquiry created")

	return inquiry, nil
}

// ListForUser retrieves the session user's side of the inquiry ledger.
func (s *inquiryService) ListForUser(ctx context.Context, session auth.Session) ([]model.Inquiry, error) {
	var (
		inquiries []model.Inquiry
		err       error
	)

	if session.UserType == model.UserTypeSeller {
		inquiries, err = s.inquiryRepo.ListBySeller(ctx, session.UserID, 0)
	} else {
		inquiries, err = s.inquiryRepo.ListByBuyer(ctx, session.UserID, 0)
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", session.UserID.String()).
			Msg("failed to list inquiries")
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateStatus lets the receiving seller move an inquiry through its
// lifecycle.
func (s *inquiryService) UpdateStatus(ctx context.Context, session auth.Session, id uuid.UUID, req *model.InquiryStatusRequest) error {
	if session.UserType != model.UserTypeSeller {
		return model.ErrSellerOnly
	}

	if err := validateRequest(req); err != nil {
		return err
	}

	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get inquiry: %w", err)
	}
	if inquiry == nil {
		return model.ErrInquiryNotFound
	}
	if inquiry.SellerID != session.UserID {
		return model.ErrNotOwner
	}

	if err := s.inquiryRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return err
	}

	s.logger.Info().
		Str("inquiry_id", id.String()).
		Str("status", req.Status).
		Msg("inquiry status updated")

	return nil
}
