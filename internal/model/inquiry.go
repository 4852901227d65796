package model

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry status values.
const (
	InquiryStatusPending     = "pending"
	InquiryStatusResponded   = "responded"
	InquiryStatusNegotiating = "negotiating"
	InquiryStatusClosed      = "closed"
)

// Inquiry is a buyer-to-seller message tied to a specific product.
type Inquiry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"productId" db:"product_id"`
	BuyerID     uuid.UUID `json:"buyerId" db:"buyer_id"`
	SellerID    uuid.UUID `json:"sellerId" db:"seller_id"`
	Message     string    `json:"message" db:"message"`
	Quantity    *int      `json:"quantity,omitempty" db:"quantity"`
	TargetPrice *float64  `json:"targetPrice,omitempty" db:"target_price"`
	Currency    string    `json:"currency" db:"currency"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Joined rows for inquiry listings: the product and the counterparty
	// (seller when listed by a buyer, buyer when listed by a seller).
	Product      *InquiryProduct `json:"product,omitempty" db:"-"`
	Counterparty *SellerSummary  `json:"counterparty,omitempty" db:"-"`
}

// InquiryProduct is the slice of a product embedded in inquiry listings.
type InquiryProduct struct {
	Title    string   `json:"title"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency"`
}

// InquiryRequest is the payload for creating an inquiry.
type InquiryRequest struct {
	ProductID   string   `json:"productId" validate:"required,uuid"`
	Message     string   `json:"message" validate:"required"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	TargetPrice *float64 `json:"targetPrice,omitempty" validate:"omitempty,gte=0"`
	Currency    string   `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// InquiryStatusRequest is the payload for a seller updating an inquiry.
type InquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=responded negotiating closed"`
}
