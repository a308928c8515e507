package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pgdesk/room-service/internal/domain"
)

func rentPayment(month string, amount int64) *domain.Payment {
	return &domain.Payment{
		PaymentType: domain.PaymentTypeRent,
		Month:       month,
		Amount:      decimal.NewFromInt(amount),
	}
}

func securityPayment(month string, amount int64) *domain.Payment {
	return &domain.Payment{
		PaymentType: domain.PaymentTypeSecurity,
		Month:       month,
		Amount:      decimal.NewFromInt(amount),
	}
}

func TestTotalPaid_EmptyHistory(t *testing.T) {
	guest := &domain.Guest{}

	assert.True(t, TotalPaid(guest, "2024-05", domain.PaymentTypeRent).IsZero())
	assert.True(t, TotalPaid(guest, "", domain.PaymentTypeSecurity).IsZero())
	assert.True(t, TotalPaid(nil, "2024-05", domain.PaymentTypeRent).IsZero())
}

func TestTotalPaid_RentScopedToMonth(t *testing.T) {
	guest := &domain.Guest{
		RentHistory: []*domain.Payment{
			rentPayment("2024-02", 4000),
			rentPayment("2024-03", 2500),
			rentPayment("2024-03", 1500),
			rentPayment("2024-04", 10000),
		},
	}

	got := TotalPaid(guest, "2024-03", domain.PaymentTypeRent)
	assert.True(t, got.Equal(decimal.NewFromInt(4000)), "got %s", got)

	// A february payment must not leak into march.
	feb := TotalPaid(guest, "2024-02", domain.PaymentTypeRent)
	assert.True(t, feb.Equal(decimal.NewFromInt(4000)))

	none := TotalPaid(guest, "2024-06", domain.PaymentTypeRent)
	assert.True(t, none.IsZero())
}

func TestTotalPaid_OrderIndependent(t *testing.T) {
	forward := &domain.Guest{
		RentHistory: []*domain.Payment{
			rentPayment("2024-05", 1000),
			rentPayment("2024-05", 2000),
			rentPayment("2024-05", 3000),
		},
	}
	reversed := &domain.Guest{
		RentHistory: []*domain.Payment{
			rentPayment("2024-05", 3000),
			rentPayment("2024-05", 2000),
			rentPayment("2024-05", 1000),
		},
	}

	a := TotalPaid(forward, "2024-05", domain.PaymentTypeRent)
	b := TotalPaid(reversed, "2024-05", domain.PaymentTypeRent)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(decimal.NewFromInt(6000)))
}

func TestTotalPaid_SecurityIgnoresScope(t *testing.T) {
	guest := &domain.Guest{
		SecurityHistory: []*domain.Payment{
			securityPayment("2024-01", 2000),
			securityPayment("2024-04", 1500),
			securityPayment("2024-07", 1500),
		},
	}

	// Any scope argument yields the all-time sum.
	for _, scope := range []string{"", "2024-01", "2024-04", "2099-12"} {
		got := TotalPaid(guest, scope, domain.PaymentTypeSecurity)
		assert.True(t, got.Equal(decimal.NewFromInt(5000)), "scope %q: got %s", scope, got)
	}
}

func TestTotalPaid_TypeIsolation(t *testing.T) {
	// A mistagged row in the wrong history must not count.
	guest := &domain.Guest{
		RentHistory: []*domain.Payment{
			rentPayment("2024-05", 4000),
			securityPayment("2024-05", 5000),
		},
		SecurityHistory: []*domain.Payment{
			securityPayment("2024-05", 5000),
			rentPayment("2024-05", 4000),
		},
	}

	rent := TotalPaid(guest, "2024-05", domain.PaymentTypeRent)
	assert.True(t, rent.Equal(decimal.NewFromInt(4000)))

	security := TotalPaid(guest, "", domain.PaymentTypeSecurity)
	assert.True(t, security.Equal(decimal.NewFromInt(5000)))
}

// Scenarios from the Rooms dashboard: 2-sharing room, rent 10000, security 5000.
func TestReconciliationScenarios(t *testing.T) {
	required := decimal.NewFromInt(10000)

	t.Run("fresh guest pays full rent", func(t *testing.T) {
		guest := &domain.Guest{}
		total := TotalPaid(guest, "2024-05", domain.PaymentTypeRent)
		got := Evaluate(decimal.NewFromInt(10000), total, required)
		assert.Equal(t, OutcomeFull, got.Outcome)
	})

	t.Run("fresh guest pays part of the rent", func(t *testing.T) {
		guest := &domain.Guest{}
		total := TotalPaid(guest, "2024-05", domain.PaymentTypeRent)
		got := Evaluate(decimal.NewFromInt(4000), total, required)
		assert.Equal(t, OutcomePartial, got.Outcome)
		assert.True(t, got.Remaining.Equal(decimal.NewFromInt(6000)))
	})

	t.Run("top-up after full month needs confirmation", func(t *testing.T) {
		guest := &domain.Guest{
			RentHistory: []*domain.Payment{rentPayment("2024-05", 10000)},
		}
		total := TotalPaid(guest, "2024-05", domain.PaymentTypeRent)
		got := Evaluate(decimal.NewFromInt(500), total, required)
		assert.Equal(t, OutcomeOverpayment, got.Outcome)
		assert.True(t, got.Excess.Equal(decimal.NewFromInt(500)))
	})
}

func TestRequirements(t *testing.T) {
	tests := []struct {
		roomType string
		rent     int64
		security int64
		capacity int
	}{
		{domain.SharingTypeSingle, 15000, 5000, 1},
		{domain.SharingTypeDouble, 10000, 5000, 2},
		{domain.SharingTypeTriple, 8500, 5000, 3},
		{domain.SharingTypeQuad, 6500, 5000, 4},
	}

	for _, tt := range tests {
		t.Run(tt.roomType, func(t *testing.T) {
			assert.True(t, DefaultRent(tt.roomType).Equal(decimal.NewFromInt(tt.rent)))
			assert.True(t, DefaultSecurity(tt.roomType).Equal(decimal.NewFromInt(tt.security)))
			assert.Equal(t, tt.capacity, Capacity(tt.roomType))
		})
	}

	assert.True(t, DefaultRent("5-sharing").IsZero())
	assert.Equal(t, 0, Capacity("5-sharing"))
}
