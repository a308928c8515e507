package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentTypeRent     = "rent"
	PaymentTypeSecurity = "security"
)

const (
	PaymentStatusFull    = "full"
	PaymentStatusPartial = "partial"
	PaymentStatusPending = "pending"
)

// Payment is a single recorded payment in a guest's ledger. Rent payments
// are scoped to Month; security deposit payments accumulate across all time.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	GuestID       uuid.UUID       `json:"-" db:"guest_id"`
	PaymentType   string          `json:"payment_type" db:"payment_type"`
	Month         string          `json:"month" db:"month"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	Notes         string          `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// PaymentProposal is an overpayment held in pending state until the operator
// confirms or cancels it. It lives in the proposal store, never in Postgres.
type PaymentProposal struct {
	Token         uuid.UUID       `json:"token"`
	RoomNumber    string          `json:"room_number"`
	GuestID       uuid.UUID       `json:"guest_id"`
	UserID        int             `json:"user_id"`
	GuestName     string          `json:"guest_name"`
	PaymentType   string          `json:"payment_type"`
	Month         string          `json:"month"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Required      decimal.Decimal `json:"required"`
	Excess        decimal.Decimal `json:"excess"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DTOs for requests and responses

type AddPaymentRequest struct {
	PaymentType   string          `json:"payment_type" validate:"required,oneof=rent security"`
	Month         string          `json:"month,omitempty"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=Cash UPI 'Bank Transfer' Cheque"`
	Notes         string          `json:"notes,omitempty"`
}

// AddPaymentResponse reports the reconciliation decision for a proposed
// payment. ConfirmationToken is set only for the overpayment decision, in
// which case nothing has been persisted yet.
type AddPaymentResponse struct {
	Decision          string           `json:"decision"`
	Month             string           `json:"month"`
	TotalPaid         decimal.Decimal  `json:"total_paid"`
	Required          decimal.Decimal  `json:"required"`
	Remaining         *decimal.Decimal `json:"remaining,omitempty"`
	Excess            *decimal.Decimal `json:"excess,omitempty"`
	ConfirmationToken *uuid.UUID       `json:"confirmation_token,omitempty"`
	Message           string           `json:"message"`
}

// PaymentFilter narrows payment report queries
type PaymentFilter struct {
	RoomNumber  string
	GuestName   string
	Month       string
	Year        string
	PaymentType string
}

// PaymentDetail is one aggregated row per guest, room, month and type.
type PaymentDetail struct {
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	GuestName     string          `json:"guest_name"`
	GuestPhone    string          `json:"guest_phone"`
	GuestEmail    string          `json:"guest_email"`
	PaymentMonth  string          `json:"payment_month"`
	PaymentType   string          `json:"payment_type"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   *time.Time      `json:"payment_date"`
	PaymentStatus string          `json:"payment_status"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes,omitempty"`
}

// OverdueItem is one outstanding scope (type + month) for a guest.
type OverdueItem struct {
	PaymentType string          `json:"type"`
	Month       string          `json:"month"`
	Outstanding decimal.Decimal `json:"outstanding"`
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}

// OverdueGuest aggregates everything a guest still owes.
type OverdueGuest struct {
	RoomNumber        string          `json:"room_number"`
	RoomType          string          `json:"room_type"`
	GuestName         string          `json:"guest_name"`
	GuestPhone        string          `json:"guest_phone"`
	GuestEmail        string          `json:"guest_email"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	LatestOverdueDate *time.Time      `json:"latest_overdue_date"`
	DaysOverdue       int             `json:"days_overdue"`
	OverdueItems      []OverdueItem   `json:"overdue_items"`
}

// TypeSummary holds per-payment-type counters inside the analytics report.
type TypeSummary struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlySummary struct {
	Count  int                    `json:"count"`
	Amount decimal.Decimal        `json:"amount"`
	ByType map[string]TypeSummary `json:"by_type"`
}

type MethodSummary struct {
	Count  int                    `json:"count"`
	Amount decimal.Decimal        `json:"amount"`
	ByType map[string]TypeSummary `json:"by_type"`
}

type PaymentAnalytics struct {
	TotalPayments        int                        `json:"total_payments"`
	TotalAmount          decimal.Decimal            `json:"total_amount"`
	PaidPayments         int                        `json:"paid_payments"`
	PaidAmount           decimal.Decimal            `json:"paid_amount"`
	PendingPayments      int                        `json:"pending_payments"`
	PendingAmount        decimal.Decimal            `json:"pending_amount"`
	MonthlySummary       map[string]*MonthlySummary `json:"monthly_summary"`
	PaymentMethodSummary map[string]*MethodSummary  `json:"payment_method_summary"`
	PaymentMethodAmounts map[string]decimal.Decimal `json:"payment_method_amounts"`
	PaymentTypeSummary   map[string]*TypeSummary    `json:"payment_type_summary"`
}

// PendingMonthlyGuest is a guest with no full rent payment for the current month.
type PendingMonthlyGuest struct {
	RoomNumber   string          `json:"room_number"`
	RoomType     string          `json:"room_type"`
	GuestName    string          `json:"guest_name"`
	GuestPhone   string          `json:"guest_phone"`
	GuestEmail   string          `json:"guest_email"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	PaymentMonth string          `json:"payment_month"`
}

// ReminderResult summarizes a reminder pass.
type ReminderResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
