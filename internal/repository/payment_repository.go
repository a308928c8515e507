package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pgdesk/room-service/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func insertPayment(ctx context.Context, ex sqlx.ExtContext, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, guest_id, payment_type, month, amount, payment_method, payment_date, payment_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := ex.ExecContext(ctx, query,
		payment.ID,
		payment.GuestID,
		payment.PaymentType,
		payment.Month,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentDate,
		payment.PaymentStatus,
		payment.Notes,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return insertPayment(ctx, r.db, payment)
}

func (r *paymentRepository) SetGuestPaidFlag(ctx context.Context, guestID uuid.UUID, paymentType string, paid bool) error {
	column := "rent_paid"
	if paymentType == domain.PaymentTypeSecurity {
		column = "security_paid"
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE guests SET `+column+` = $2 WHERE id = $1`, guestID, paid)
	return err
}
