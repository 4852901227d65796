package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"globaltrade/internal/model"
	"globaltrade/internal/tariff"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTariffRepository is a mock implementation of TariffRepository.
type MockTariffRepository struct {
	mock.Mock
}

func (m *MockTariffRepository) ListRecent(ctx context.Context, limit int) ([]model.Tariff, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tariff), args.Error(1)
}

func (m *MockTariffRepository) DistinctCountries(ctx context.Context) ([]string, []string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *MockTariffRepository) Upsert(ctx context.Context, tariffs []model.Tariff) (int, error) {
	args := m.Called(ctx, tariffs)
	return args.Int(0), args.Error(1)
}

// stubLoader serves canned schedule rows per path.
type stubLoader struct {
	rows map[string][]model.Tariff
	errs map[string]error
}

func (l *stubLoader) Load(ctx context.Context, path string) ([]model.Tariff, error) {
	if err := l.errs[path]; err != nil {
		return nil, err
	}
	return l.rows[path], nil
}

func TestTariffService_ListRecent(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "Zero limit defaults", limit: 0, expectedLimit: 20},
		{name: "Negative limit defaults", limit: -1, expectedLimit: 20},
		{name: "Limit within bounds", limit: 50, expectedLimit: 50},
		{name: "Limit above max is capped", limit: 500, expectedLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTariffRepository)
			service := NewTariffService(mockRepo, &stubLoader{}, logger)

			expected := []model.Tariff{{HSCode: "850440"}}
			mockRepo.On("ListRecent", ctx, tt.expectedLimit).Return(expected, nil)

			tariffs, err := service.ListRecent(ctx, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, expected, tariffs)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTariffService_Calculate(t *testing.T) {
	service := NewTariffService(new(MockTariffRepository), &stubLoader{}, zerolog.Nop())

	result := service.Calculate(tariff.DutyInput{
		ProductValue:     "10000",
		TariffRate:       "7.5",
		AdditionalDuties: "0",
		Currency:         "USD",
	})

	assert.InDelta(t, 750, result.TotalDuties, 1e-9)
	assert.InDelta(t, 10750, result.TotalCost, 1e-9)
	assert.InDelta(t, 7.5, result.EffectiveRate, 1e-9)

	zero := service.Calculate(tariff.DutyInput{ProductValue: "0", TariffRate: "5"})
	assert.True(t, math.IsNaN(zero.EffectiveRate))
}

func TestTariffService_ImportSchedules(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	rate := decimal.RequireFromString("7.5")
	usRows := []model.Tariff{{HSCode: "850440", OriginCountry: "China", DestinationCountry: "United States", TariffRate: rate}}
	euRows := []model.Tariff{{HSCode: "850440", OriginCountry: "China", DestinationCountry: "Germany", TariffRate: rate}}

	t.Run("imports every file", func(t *testing.T) {
		mockRepo := new(MockTariffRepository)
		loader := &stubLoader{rows: map[string][]model.Tariff{
			"us.csv.gz": usRows,
			"eu.csv.gz": euRows,
		}}
		service := NewTariffService(mockRepo, loader, logger)

		mockRepo.On("Upsert", ctx, usRows).Return(1, nil)
		mockRepo.On("Upsert", ctx, euRows).Return(1, nil)

		err := service.ImportSchedules(ctx, []string{"us.csv.gz", "eu.csv.gz"})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no files is a no-op", func(t *testing.T) {
		mockRepo := new(MockTariffRepository)
		service := NewTariffService(mockRepo, &stubLoader{}, logger)

		require.NoError(t, service.ImportSchedules(ctx, nil))
		mockRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("a failed load fails the import", func(t *testing.T) {
		mockRepo := new(MockTariffRepository)
		loader := &stubLoader{
			rows: map[string][]model.Tariff{"us.csv.gz": usRows},
			errs: map[string]error{"eu.csv.gz": errors.New("no such file")},
		}
		service := NewTariffService(mockRepo, loader, logger)

		mockRepo.On("Upsert", ctx, usRows).Return(1, nil)

		err := service.ImportSchedules(ctx, []string{"us.csv.gz", "eu.csv.gz"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "eu.csv.gz")
	})

	t.Run("a failed upsert fails the import", func(t *testing.T) {
		mockRepo := new(MockTariffRepository)
		loader := &stubLoader{rows: map[string][]model.Tariff{"us.csv.gz": usRows}}
		service := NewTariffService(mockRepo, loader, logger)

		mockRepo.On("Upsert", ctx, usRows).Return(0, errors.New("database error"))

		err := service.ImportSchedules(ctx, []string{"us.csv.gz"})

		require.Error(t, err)
	})
}
