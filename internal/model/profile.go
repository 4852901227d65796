package model

import (
	"time"

	"github.com/google/uuid"
)

// User types. A profile is either a buyer or a seller; the type never
// changes after signup.
const (
	UserTypeBuyer  = "buyer"
	UserTypeSeller = "seller"
)

// Profile represents a registered trading company. One profile exists per
// authenticated user, created at signup.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserType    string    `json:"userType" db:"user_type"`
	CompanyName string    `json:"companyName" db:"company_name"`
	FullName    string    `json:"fullName" db:"full_name"`
	Country     string    `json:"country,omitempty" db:"country"`
	City        string    `json:"city,omitempty" db:"city"`
	Verified    bool      `json:"verified" db:"verified"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// User holds the authentication record behind a profile.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SignUpRequest is the payload for registering a new account.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	UserType    string `json:"userType" validate:"required,oneof=buyer seller"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}
