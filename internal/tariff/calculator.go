// Package tariff implements the import duty calculator and the tariff
// schedule loaders.
package tariff

import (
	"math"
	"strconv"
	"strings"
)

// DutyInput holds the raw form values for a duty estimate. All numeric
// fields are strings as submitted; blank or unparseable values are treated
// as zero.
type DutyInput struct {
	ProductValue     string `json:"productValue"`
	TariffRate       string `json:"tariffRate"`
	AdditionalDuties string `json:"additionalDuties"`
	Currency         string `json:"currency"`
}

// DutyResult is the cost breakdown for an import. Invariants:
// TotalCost = ProductValue + TotalDuties, and EffectiveRate =
// TotalDuties / ProductValue * 100 when ProductValue > 0 (NaN otherwise).
// No rounding is applied here; callers round for presentation.
type DutyResult struct {
	ProductValue     float64
	TariffAmount     float64
	AdditionalAmount float64
	TotalDuties      float64
	TotalCost        float64
	EffectiveRate    float64
	Currency         string
}

// CalculateDuties computes the duty breakdown for the given input. The
// function is total over all inputs: zero and negative values are accepted
// and never raise an error.
func CalculateDuties(in DutyInput) DutyResult {
	value := parseAmount(in.ProductValue)
	rate := parseAmount(in.TariffRate)
	additional := parseAmount(in.AdditionalDuties)

	tariffAmount := value * rate / 100
	additionalAmount := value * additional / 100
	totalDuties := tariffAmount + additionalAmount

	effectiveRate := math.NaN()
	if value > 0 {
		effectiveRate = totalDuties / value * 100
	}

	return DutyResult{
		ProductValue:     value,
		TariffAmount:     tariffAmount,
		AdditionalAmount: additionalAmount,
		TotalDuties:      totalDuties,
		TotalCost:        value + totalDuties,
		EffectiveRate:    effectiveRate,
		Currency:         in.Currency,
	}
}

// parseAmount coerces a numeric form value, treating blank or malformed
// input as zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
