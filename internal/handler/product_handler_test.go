package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductService) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) ListMine(ctx context.Context, session auth.Session) ([]model.Product, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, session auth.Session, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, session auth.Session, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, session, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockProductService) Countries(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestProductHandler_Search(t *testing.T) {
	logger := zerolog.Nop()

	testProducts := []model.Product{
		{ID: uuid.New(), Title: "Steel pipes"},
		{ID: uuid.New(), Title: "Copper wire"},
	}

	t.Run("passes parsed filter criteria to the service", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		minPrice := 10.0
		expected := model.ProductFilter{
			Search:       "steel",
			Country:      "China",
			MinPrice:     &minPrice,
			VerifiedOnly: true,
		}
		mockService.On("Search", mock.Anything, expected).Return(testProducts, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products?search=steel&country=China&minPrice=10&verified=true", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("empty result is an empty array, not null", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Search", mock.Anything, model.ProductFilter{}).Return([]model.Product(nil), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Search", mock.Anything, model.ProductFilter{}).Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		handler := NewProductHandler(new(MockProductService), logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/products", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestProductHandler_Suggest(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("returns suggestions", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Suggestions", mock.Anything, "cof", 5).
			Return([]string{"Coffee beans", "090111"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=cof&limit=5", nil)
		w := httptest.NewRecorder()

		handler.Suggest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Coffee beans", "090111"}, body["suggestions"])
	})

	t.Run("malformed limit falls back to the default", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		mockService.On("Suggestions", mock.Anything, "cof", 0).Return([]string{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=cof&limit=lots", nil)
		w := httptest.NewRecorder()

		handler.Suggest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	productID := uuid.New()

	tests := []struct {
		name           string
		path           string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			path:           "/api/products/" + productID.String(),
			mockReturn:     &model.Product{ID: productID, Title: "Steel pipes"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			path:           "/api/products/" + productID.String(),
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Malformed ID",
			path:           "/api/products/not-a-uuid",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Missing ID",
			path:           "/api/products/",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetActiveByID", mock.Anything, productID).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	session := auth.Session{UserID: uuid.New(), UserType: model.UserTypeSeller}

	t.Run("no session yields unauthorized", func(t *testing.T) {
		handler := NewProductHandler(new(MockProductService), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates and returns 201", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		created := &model.Product{ID: uuid.New(), Title: "Steel pipes"}
		mockService.On("Create", mock.Anything, session, mock.AnythingOfType("*model.ProductRequest")).
			Return(created, nil)

		body := `{"title":"Steel pipes","description":"Seamless"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		req = req.WithContext(auth.WithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("unknown JSON fields are rejected", func(t *testing.T) {
		handler := NewProductHandler(new(MockProductService), logger)

		body := `{"title":"x","bogus":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		req = req.WithContext(auth.WithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("role errors map to forbidden", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, logger)

		buyer := auth.Session{UserID: uuid.New(), UserType: model.UserTypeBuyer}
		mockService.On("Create", mock.Anything, buyer, mock.AnythingOfType("*model.ProductRequest")).
			Return(nil, model.ErrSellerOnly)

		body := `{"title":"Steel pipes","description":"Seamless"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		req = req.WithContext(auth.WithSession(req.Context(), buyer))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
