package service

import (
	"context"
	"errors"
	"testing"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInquiryRepository is a mock implementation of InquiryRepository.
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]model.Inquiry, error) {
	args := m.Called(ctx, buyerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]model.Inquiry, error) {
	args := m.Called(ctx, sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestInquiryService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	buyerID := uuid.New()
	sellerID := uuid.New()
	productID := uuid.New()
	buyer := auth.Session{UserID: buyerID, UserType: model.UserTypeBuyer}

	activeProduct := &model.Product{
		ID:       productID,
		SellerID: sellerID,
		Title:    "Steel pipes",
		Currency: "EUR",
		Status:   model.ProductStatusActive,
	}

	validReq := &model.InquiryRequest{
		ProductID: productID.String(),
		Message:   "What is your lead time for 500 units?",
	}

	t.Run("sellers cannot send inquiries", func(t *testing.T) {
		service := NewInquiryService(new(MockInquiryRepository), new(MockProductRepository), logger)

		seller := auth.Session{UserID: sellerID, UserType: model.UserTypeSeller}
		inquiry, err := service.Create(ctx, seller, validReq)

		assert.Equal(t, model.ErrBuyerOnly, err)
		assert.Nil(t, inquiry)
	})

	t.Run("unknown product", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		mockProducts := new(MockProductRepository)
		service := NewInquiryService(mockInquiries, mockProducts, logger)

		mockProducts.On("GetActiveByID", ctx, productID).Return(nil, nil)

		inquiry, err := service.Create(ctx, buyer, validReq)

		assert.Equal(t, model.ErrProductNotFound, err)
		assert.Nil(t, inquiry)
		mockInquiries.AssertNotCalled(t, "Create")
	})

	t.Run("routes the inquiry to the product seller", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		mockProducts := new(MockProductRepository)
		service := NewInquiryService(mockInquiries, mockProducts, logger)

		mockProducts.On("GetActiveByID", ctx, productID).Return(activeProduct, nil)
		mockInquiries.On("Create", ctx, mock.MatchedBy(func(i *model.Inquiry) bool {
			return i.BuyerID == buyerID &&
				i.SellerID == sellerID &&
				i.Status == model.InquiryStatusPending &&
				i.Currency == "EUR"
		})).Return(nil)

		inquiry, err := service.Create(ctx, buyer, validReq)

		require.NoError(t, err)
		assert.Equal(t, sellerID, inquiry.SellerID)
		assert.Equal(t, "EUR", inquiry.Currency)
		mockInquiries.AssertExpectations(t)
	})

	t.Run("an explicit currency wins over the product currency", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		mockProducts := new(MockProductRepository)
		service := NewInquiryService(mockInquiries, mockProducts, logger)

		mockProducts.On("GetActiveByID", ctx, productID).Return(activeProduct, nil)
		mockInquiries.On("Create", ctx, mock.Anything).Return(nil)

		req := &model.InquiryRequest{
			ProductID: productID.String(),
			Message:   "Quoting in dollars please",
			Currency:  "USD",
		}

		inquiry, err := service.Create(ctx, buyer, req)

		require.NoError(t, err)
		assert.Equal(t, "USD", inquiry.Currency)
	})

	t.Run("invalid payload is rejected", func(t *testing.T) {
		service := NewInquiryService(new(MockInquiryRepository), new(MockProductRepository), logger)

		inquiry, err := service.Create(ctx, buyer, &model.InquiryRequest{ProductID: "not-a-uuid"})

		require.Error(t, err)
		assert.Nil(t, inquiry)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	})
}

func TestInquiryService_ListForUser(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()

	expected := []model.Inquiry{{ID: uuid.New(), Message: "Lead time?"}}

	t.Run("buyers see their sent inquiries", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		mockInquiries.On("ListByBuyer", ctx, userID, 0).Return(expected, nil)

		inquiries, err := service.ListForUser(ctx, auth.Session{UserID: userID, UserType: model.UserTypeBuyer})

		require.NoError(t, err)
		assert.Equal(t, expected, inquiries)
		mockInquiries.AssertExpectations(t)
	})

	t.Run("sellers see their received inquiries", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		mockInquiries.On("ListBySeller", ctx, userID, 0).Return(expected, nil)

		inquiries, err := service.ListForUser(ctx, auth.Session{UserID: userID, UserType: model.UserTypeSeller})

		require.NoError(t, err)
		assert.Equal(t, expected, inquiries)
		mockInquiries.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		mockInquiries.On("ListByBuyer", ctx, userID, 0).Return(nil, errors.New("database error"))

		inquiries, err := service.ListForUser(ctx, auth.Session{UserID: userID, UserType: model.UserTypeBuyer})

		require.Error(t, err)
		assert.Nil(t, inquiries)
	})
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	sellerID := uuid.New()
	inquiryID := uuid.New()
	seller := auth.Session{UserID: sellerID, UserType: model.UserTypeSeller}
	req := &model.InquiryStatusRequest{Status: model.InquiryStatusResponded}

	t.Run("buyers cannot update status", func(t *testing.T) {
		service := NewInquiryService(new(MockInquiryRepository), new(MockProductRepository), logger)

		buyer := auth.Session{UserID: uuid.New(), UserType: model.UserTypeBuyer}
		err := service.UpdateStatus(ctx, buyer, inquiryID, req)

		assert.Equal(t, model.ErrSellerOnly, err)
	})

	t.Run("only the receiving seller may update", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		other := &model.Inquiry{ID: inquiryID, SellerID: uuid.New()}
		mockInquiries.On("GetByID", ctx, inquiryID).Return(other, nil)

		err := service.UpdateStatus(ctx, seller, inquiryID, req)

		assert.Equal(t, model.ErrNotOwner, err)
		mockInquiries.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("unknown inquiry", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		mockInquiries.On("GetByID", ctx, inquiryID).Return(nil, nil)

		err := service.UpdateStatus(ctx, seller, inquiryID, req)

		assert.Equal(t, model.ErrInquiryNotFound, err)
	})

	t.Run("success", func(t *testing.T) {
		mockInquiries := new(MockInquiryRepository)
		service := NewInquiryService(mockInquiries, new(MockProductRepository), logger)

		inquiry := &model.Inquiry{ID: inquiryID, SellerID: sellerID}
		mockInquiries.On("GetByID", ctx, inquiryID).Return(inquiry, nil)
		mockInquiries.On("UpdateStatus", ctx, inquiryID, model.InquiryStatusResponded).Return(nil)

		err := service.UpdateStatus(ctx, seller, inquiryID, req)

		require.NoError(t, err)
		mockInquiries.AssertExpectations(t)
	})
}
