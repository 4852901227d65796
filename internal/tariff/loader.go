package tariff

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"

	"globaltrade/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a gzipped tariff schedule file and returns its rows.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Tariff, error)
}

// fileLoader implements Loader for schedule files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based schedule loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "schedule-loader").Logger(),
	}
}

// Load reads a gzipped schedule file and returns the parsed tariff rows.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Tariff, error) {
	l.logger.Info().Str("file", filePath).Msg("loading tariff schedule file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open schedule file")
		return nil, fmt.Errorf("failed to open schedule file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	tariffs, err := ParseSchedule(gzipReader, l.logger)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading schedule file")
		return nil, fmt.Errorf("error reading schedule file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("rates_loaded", len(tariffs)).
		Msg("tariff schedule file loaded successfully")

	return tariffs, nil
}
