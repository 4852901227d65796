package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tariff is a published duty rate for an HS code on a trade lane. Rates
// are percentages and kept as decimals so schedule data round-trips
// without binary float drift.
type Tariff struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	HSCode             string          `json:"hsCode" db:"hs_code"`
	ProductDescription string          `json:"productDescription" db:"product_description"`
	OriginCountry      string          `json:"originCountry" db:"origin_country"`
	DestinationCountry string          `json:"destinationCountry" db:"destination_country"`
	TariffRate         decimal.Decimal `json:"tariffRate" db:"tariff_rate"`
	AdditionalDuties   decimal.Decimal `json:"additionalDuties" db:"additional_duties"`
	TradeAgreement     string          `json:"tradeAgreement" db:"trade_agreement"`
	LastUpdated        time.Time       `json:"lastUpdated" db:"last_updated"`
}
