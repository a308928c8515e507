package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Guest represents a resident of a room. UserID is assigned sequentially
// within the room; ID is the storage primary key.
type Guest struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	RoomID          uuid.UUID  `json:"-" db:"room_id"`
	UserID          int        `json:"user_id" db:"user_id"`
	Username        string     `json:"username" db:"username"`
	Phone           string     `json:"phone" db:"phone"`
	Email           string     `json:"email" db:"email"`
	Aadhar          string     `json:"aadhar" db:"aadhar"`
	DateOfJoining   time.Time  `json:"date_of_joining" db:"date_of_joining"`
	DateOfLeaving   *time.Time `json:"date_of_leaving,omitempty" db:"date_of_leaving"`
	RentPaid        bool       `json:"rent_paid" db:"rent_paid"`
	SecurityPaid    bool       `json:"security_paid" db:"security_paid"`
	RentHistory     []*Payment `json:"rent_history" db:"-"`
	SecurityHistory []*Payment `json:"security_history" db:"-"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type AddGuestRequest struct {
	Username      string     `json:"username" validate:"required"`
	Phone         string     `json:"phone" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	Aadhar        string     `json:"aadhar" validate:"required,len=12,numeric"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`

	// Initial onboarding payments. Both are required, must be positive and
	// must not exceed the room's stored requirement.
	RentAmountPaid        decimal.Decimal `json:"rent_amount_paid" validate:"required"`
	SecurityAmountPaid    decimal.Decimal `json:"security_amount_paid" validate:"required"`
	RentPaymentMethod     string          `json:"rent_payment_method,omitempty" validate:"omitempty,oneof=Cash UPI 'Bank Transfer' Cheque"`
	SecurityPaymentMethod string          `json:"security_payment_method,omitempty" validate:"omitempty,oneof=Cash UPI 'Bank Transfer' Cheque"`
}

type UpdateGuestRequest struct {
	Username      *string    `json:"username,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Aadhar        *string    `json:"aadhar,omitempty" validate:"omitempty,len=12,numeric"`
	DateOfLeaving *time.Time `json:"date_of_leaving,omitempty"`
}
