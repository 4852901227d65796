package model

import (
	"time"

	"github.com/google/uuid"
)

// Product status values. A listing is never hard-deleted; it moves
// between these states instead.
const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents a seller's listing in the marketplace.
type Product struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	SellerID             uuid.UUID  `json:"sellerId" db:"seller_id"`
	CategoryID           *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	Title                string     `json:"title" db:"title"`
	Description          string     `json:"description" db:"description"`
	Price                *float64   `json:"price,omitempty" db:"price"`
	Currency             string     `json:"currency" db:"currency"`
	MinimumOrderQuantity *int       `json:"minimumOrderQuantity,omitempty" db:"minimum_order_quantity"`
	Unit                 string     `json:"unit,omitempty" db:"unit"`
	OriginCountry        string     `json:"originCountry,omitempty" db:"origin_country"`
	HSCode               string     `json:"hsCode,omitempty" db:"hs_code"`
	Status               string     `json:"status" db:"status"`
	Featured             bool       `json:"featured" db:"featured"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`

	// Joined rows, populated by search and detail queries.
	Seller   *SellerSummary   `json:"seller,omitempty" db:"-"`
	Category *CategorySummary `json:"category,omitempty" db:"-"`
}

// SellerSummary is the slice of a seller profile embedded in listing results.
type SellerSummary struct {
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
	Country     string `json:"country,omitempty"`
	Verified    bool   `json:"verified"`
}

// CategorySummary is the category name embedded in listing results.
type CategorySummary struct {
	Name string `json:"name"`
}

// ProductRequest is the payload for creating or updating a listing.
type ProductRequest struct {
	Title                string   `json:"title" validate:"required"`
	Description          string   `json:"description" validate:"required"`
	Price                *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency             string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	MinimumOrderQuantity *int     `json:"minimumOrderQuantity,omitempty" validate:"omitempty,gt=0"`
	Unit                 string   `json:"unit,omitempty"`
	OriginCountry        string   `json:"originCountry,omitempty"`
	HSCode               string   `json:"hsCode,omitempty"`
	CategoryID           *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Featured             bool     `json:"featured,omitempty"`
	Status               string   `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
}
