package repository

import (
	"context"
	"fmt"

	"globaltrade/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tariffRepository implements the TariffRepository interface using PostgreSQL.
type tariffRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTariffRepository creates a new PostgreSQL-backed tariff repository.
func NewTariffRepository(pool *pgxpool.Pool, logger zerolog.Logger) TariffRepository {
	return &tariffRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tariff").Logger(),
	}
}

// ListRecent retrieves the most recently updated tariff rows.
func (r *tariffRepository) ListRecent(ctx context.Context, limit int) ([]model.Tariff, error) {
	query := `
		SELECT id, hs_code, product_description, origin_country, destination_country,
		       tariff_rate, additional_duties, trade_agreement, last_updated
		FROM tariffs
		ORDER BY last_updated DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query tariffs")
		return nil, fmt.Errorf("failed to query tariffs: %w", err)
	}
	defer rows.Close()

	var tariffs []model.Tariff
	for rows.Next() {
		var t model.Tariff
		err := rows.Scan(
			&t.ID, &t.HSCode, &t.ProductDescription, &t.OriginCountry,
			&t.DestinationCountry, &t.TariffRate, &t.AdditionalDuties,
			&t.TradeAgreement, &t.LastUpdated,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tariff row")
			return nil, fmt.Errorf("failed to scan tariff: %w", err)
		}
		tariffs = append(tariffs, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tariff rows")
		return nil, fmt.Errorf("error iterating tariffs: %w", err)
	}

	return tariffs, nil
}

// DistinctCountries retrieves the distinct origin and destination countries
// present in the tariff table.
func (r *tariffRepository) DistinctCountries(ctx context.Context) ([]string, []string, error) {
	origins, err := r.distinct(ctx, "origin_country")
	if err != nil {
		return nil, nil, err
	}

	destinations, err := r.distinct(ctx, "destination_country")
	if err != nil {
		return nil, nil, err
	}

	return origins, destinations, nil
}

func (r *tariffRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM tariffs ORDER BY %s`, column, column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Str("column", column).Msg("failed to query distinct countries")
		return nil, fmt.Errorf("failed to query distinct countries: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	return values, nil
}

// Upsert inserts or refreshes tariff rows keyed by the trade lane.
func (r *tariffRepository) Upsert(ctx context.Context, tariffs []model.Tariff) (int, error) {
	if len(tariffs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO tariffs (
			hs_code, product_description, origin_country, destination_country,
			tariff_rate, additional_duties, trade_agreement, last_updated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (hs_code, origin_country, destination_country)
		DO UPDATE SET
			product_description = EXCLUDED.product_description,
			tariff_rate = EXCLUDED.tariff_rate,
			additional_duties = EXCLUDED.additional_duties,
			trade_agreement = EXCLUDED.trade_agreement,
			last_updated = EXCLUDED.last_updated
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, t := range tariffs {
		_, err := tx.Exec(ctx, query,
			t.HSCode, t.ProductDescription, t.OriginCountry, t.DestinationCountry,
			t.TariffRate, t.AdditionalDuties, t.TradeAgreement, t.LastUpdated,
		)
		if err != nil {
			r.logger.Error().Err(err).
				Str("hs_code", t.HSCode).
				Msg("failed to upsert tariff")
			return 0, fmt.Errorf("failed to upsert tariff %s: %w", t.HSCode, err)
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit tariff upsert: %w", err)
	}

	return written, nil
}
