package service

import (
	"context"
	"fmt"
	"sync"

	"globaltrade/internal/model"
	"globaltrade/internal/repository"
	"globaltrade/internal/tariff"

	"github.com/rs/zerolog"
)

// defaultTariffLimit caps the tariff listing when no limit is given.
const defaultTariffLimit = 20

// maxTariffLimit bounds the tariff listing.
const maxTariffLimit = 100

// tariffService implements TariffService.
type tariffService struct {
	tariffRepo repository.TariffRepository
	loader     tariff.Loader
	logger     zerolog.Logger
}

// NewTariffService creates a new tariff service.
func NewTariffService(tariffRepo repository.TariffRepository, loader tariff.Loader, logger zerolog.Logger) TariffService {
	return &tariffService{
		tariffRepo: tariffRepo,
		loader:     loader,
		logger:     logger.With().Str("service", "tariff").Logger(),
	}
}

// ListRecent retrieves the most recently updated tariff rows.
func (s *tariffService) ListRecent(ctx context.Context, limit int) ([]model.Tariff, error) {
	if limit <= 0 {
		limit = defaultTariffLimit
	}
	if limit > maxTariffLimit {
		limit = maxTariffLimit
	}

	tariffs, err := s.tariffRepo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to list tariffs")
		return nil, fmt.Errorf("failed to list tariffs: %w", err)
	}

	return tariffs, nil
}

// Countries retrieves the distinct origin and destination countries in the
// tariff table.
func (s *tariffService) Countries(ctx context.Context) ([]string, []string, error) {
	origins, destinations, err := s.tariffRepo.DistinctCountries(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tariff countries")
		return nil, nil, fmt.Errorf("failed to list tariff countries: %w", err)
	}
	return origins, destinations, nil
}

// Calculate estimates the duty breakdown for an import.
func (s *tariffService) Calculate(in tariff.DutyInput) tariff.DutyResult {
	return tariff.CalculateDuties(in)
}

// ImportSchedules loads the given schedule files concurrently and upserts
// their rows into the tariff table.
func (s *tariffService) ImportSchedules(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	type loadResult struct {
		index   int
		tariffs []model.Tariff
		err     error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			tariffs, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{
				index:   index,
				tariffs: tariffs,
				err:     err,
			}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order so imports are deterministic when the same
	// trade lane appears in more than one file.
	results := make([]loadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	total := 0
	for i, result := range results {
		if result.err != nil {
			s.logger.Error().
				Err(result.err).
				Str("file", paths[i]).
				Msg("failed to load tariff schedule")
			return fmt.Errorf("failed to load tariff schedule %s: %w", paths[i], result.err)
		}

		written, err := s.tariffRepo.Upsert(ctx, result.tariffs)
		if err != nil {
			return fmt.Errorf("failed to import tariff schedule %s: %w", paths[i], err)
		}
		total += written

		s.logger.Info().
			Str("file", paths[i]).
			Int("rates", written).
			Msg("tariff schedule imported")
	}

	s.logger.Info().
		Int("files", len(paths)).
		Int("total_rates", total).
		Msg("tariff schedule import completed")

	return nil
}
