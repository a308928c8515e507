package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pgdesk/room-service/internal/domain"
)

// TotalPaid sums a guest's recorded payments for one scope. For rent the
// scope is a YYYY-MM month key and only rent history rows for that month
// count. Security deposits are one-time, so every security history row
// counts and scope is ignored. A nil guest or missing history sums to zero.
func TotalPaid(guest *domain.Guest, scope string, paymentType string) decimal.Decimal {
	total := decimal.Zero
	if guest == nil {
		return total
	}

	if paymentType == domain.PaymentTypeSecurity {
		for _, p := range guest.SecurityHistory {
			if p.PaymentType == domain.PaymentTypeSecurity {
				total = total.Add(p.Amount)
			}
		}
		return total
	}

	for _, p := range guest.RentHistory {
		if p.PaymentType == domain.PaymentTypeRent && p.Month == scope {
			total = total.Add(p.Amount)
		}
	}
	return total
}
