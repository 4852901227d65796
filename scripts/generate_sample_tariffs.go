package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleTariffs creates sample gzipped tariff schedule files for
// local development. Each file covers one destination market; the same
// trade lane may appear in more than one file, in which case the last
// imported file wins.
func main() {
	dataDir := "data/tariffs"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	header := []string{
		"hs_code", "product_description", "origin_country",
		"destination_country", "tariff_rate", "additional_duties",
		"trade_agreement",
	}

	schedules := map[string][][]string{
		"schedule_us.csv.gz": {
			{"850440", "Static converters", "China", "United States", "7.5", "25.0", "Section 301"},
			{"850440", "Static converters", "Germany", "United States", "1.5", "0", "MFN"},
			{"610910", "Cotton t-shirts", "Bangladesh", "United States", "16.5", "0", "MFN"},
			{"870380", "Electric vehicles", "China", "United States", "2.5", "100.0", "Section 301"},
			{"090111", "Coffee, not roasted", "Brazil", "United States", "0", "0", "MFN"},
		},
		"schedule_eu.csv.gz": {
			{"850440", "Static converters", "China", "Germany", "3.3", "0", "MFN"},
			{"610910", "Cotton t-shirts", "Bangladesh", "Germany", "0", "0", "EBA"},
			{"870380", "Electric vehicles", "China", "Germany", "10.0", "17.0", "CVD"},
			{"220421", "Wine in containers", "Australia", "Germany", "0", "0", "EU-Australia FTA"},
		},
		"schedule_uk.csv.gz": {
			{"850440", "Static converters", "China", "United Kingdom", "2.0", "0", "UKGT"},
			{"610910", "Cotton t-shirts", "Bangladesh", "United Kingdom", "0", "0", "DCTS"},
			{"220421", "Wine in containers", "Australia", "United Kingdom", "0", "0", "UK-Australia FTA"},
		},
	}

	for filename, rows := range schedules {
		filePath := filepath.Join(dataDir, filename)

		if err := createScheduleFile(filePath, header, rows); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d rates\n", filePath, len(rows))
	}

	fmt.Println("\nSample tariff schedule files created successfully!")
	fmt.Println("\nImport them at startup with:")
	fmt.Println("  TARIFF_SCHEDULE_FILES=data/tariffs/schedule_us.csv.gz,data/tariffs/schedule_eu.csv.gz,data/tariffs/schedule_uk.csv.gz")
}

func createScheduleFile(filePath string, header []string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write rate: %w", err)
		}
	}
	writer.Flush()

	return writer.Error()
}
