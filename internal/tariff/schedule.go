package tariff

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"globaltrade/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Schedule files are CSV with one rate per line:
//
//	hs_code,product_description,origin_country,destination_country,tariff_rate,additional_duties,trade_agreement
//
// A header line starting with "hs_code" is skipped. Malformed lines are
// logged and dropped rather than failing the whole import.

const scheduleFieldCount = 7

// ParseSchedule reads a tariff schedule from r and returns the parsed rows.
func ParseSchedule(r io.Reader, logger zerolog.Logger) ([]model.Tariff, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var tariffs []model.Tariff
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule line %d: %w", line+1, err)
		}
		line++

		if line == 1 && len(record) > 0 && strings.EqualFold(record[0], "hs_code") {
			continue
		}

		t, err := parseScheduleRecord(record)
		if err != nil {
			logger.Warn().
				Err(err).
				Int("line", line).
				Msg("skipping malformed schedule line")
			continue
		}
		tariffs = append(tariffs, t)
	}

	return tariffs, nil
}

func parseScheduleRecord(record []string) (model.Tariff, error) {
	if len(record) != scheduleFieldCount {
		return model.Tariff{}, fmt.Errorf("expected %d fields, got %d", scheduleFieldCount, len(record))
	}

	hsCode := strings.TrimSpace(record[0])
	origin := strings.TrimSpace(record[2])
	destination := strings.TrimSpace(record[3])
	if hsCode == "" || origin == "" || destination == "" {
		return model.Tariff{}, fmt.Errorf("hs code, origin and destination are required")
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return model.Tariff{}, fmt.Errorf("invalid tariff rate %q: %w", record[4], err)
	}

	additional, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return model.Tariff{}, fmt.Errorf("invalid additional duties %q: %w", record[5], err)
	}

	agreement := strings.TrimSpace(record[6])
	if agreement == "" {
		agreement = "MFN"
	}

	return model.Tariff{
		HSCode:             hsCode,
		ProductDescription: strings.TrimSpace(record[1]),
		OriginCountry:      origin,
		DestinationCountry: destination,
		TariffRate:         rate,
		AdditionalDuties:   additional,
		TradeAgreement:     agreement,
		LastUpdated:        time.Now().UTC(),
	}, nil
}
