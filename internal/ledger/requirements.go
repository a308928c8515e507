// Package ledger holds the payment reconciliation core: the sharing-type
// requirement table, per-guest paid-total aggregation and the payment
// decision logic. Everything here is pure and operates on in-memory
// snapshots; persistence and HTTP belong to the layers above.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pgdesk/room-service/internal/domain"
)

type requirement struct {
	rent     int64
	security int64
	capacity int
}

// Default rent, security deposit and capacity per sharing type. These only
// pre-fill room creation; validation always reads the room's stored amounts.
var requirements = map[string]requirement{
	domain.SharingTypeSingle: {rent: 15000, security: 5000, capacity: 1},
	domain.SharingTypeDouble: {rent: 10000, security: 5000, capacity: 2},
	domain.SharingTypeTriple: {rent: 8500, security: 5000, capacity: 3},
	domain.SharingTypeQuad:   {rent: 6500, security: 5000, capacity: 4},
}

// DefaultRent returns the default monthly rent for a sharing type,
// zero for an unknown type.
func DefaultRent(roomType string) decimal.Decimal {
	return decimal.NewFromInt(requirements[roomType].rent)
}

// DefaultSecurity returns the default security deposit for a sharing type,
// zero for an unknown type.
func DefaultSecurity(roomType string) decimal.Decimal {
	return decimal.NewFromInt(requirements[roomType].security)
}

// Capacity returns the number of beds for a sharing type, zero for an
// unknown type.
func Capacity(roomType string) int {
	return requirements[roomType].capacity
}
