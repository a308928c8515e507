package ledger

import (
	"github.com/shopspring/decimal"
)

// Outcome tags the result of evaluating a proposed payment.
type Outcome string

const (
	OutcomeRejected    Outcome = "rejected"
	OutcomePartial     Outcome = "partial"
	OutcomeFull        Outcome = "full"
	OutcomeOverpayment Outcome = "overpayment"
)

// Decision is the reconciliation verdict for a proposed payment amount.
// Remaining is set for partial acceptance, Excess for overpayment, Reason
// only for rejection.
type Decision struct {
	Outcome   Outcome
	Remaining decimal.Decimal
	Excess    decimal.Decimal
	Reason    string
}

// Evaluate decides what a proposed payment would mean given the total
// already paid in scope and the required amount. An overpayment decision
// must not be persisted until the operator confirms it.
func Evaluate(amount, totalPaid, required decimal.Decimal) Decision {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Decision{Outcome: OutcomeRejected, Reason: "amount must be positive"}
	}

	newTotal := totalPaid.Add(amount)
	switch {
	case newTotal.GreaterThan(required):
		return Decision{Outcome: OutcomeOverpayment, Excess: newTotal.Sub(required)}
	case newTotal.Equal(required):
		return Decision{Outcome: OutcomeFull}
	default:
		return Decision{Outcome: OutcomePartial, Remaining: required.Sub(newTotal)}
	}
}

// EvaluateInitial applies the stricter onboarding rule: the first rent and
// security amounts entered when adding a guest must be positive and may not
// exceed the requirement. Overpayment is never confirmable here; it is a
// plain rejection.
func EvaluateInitial(amount, required decimal.Decimal) Decision {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Decision{Outcome: OutcomeRejected, Reason: "amount must be positive"}
	}
	if amount.GreaterThan(required) {
		return Decision{Outcome: OutcomeRejected, Reason: "cannot exceed required amount"}
	}
	if amount.Equal(required) {
		return Decision{Outcome: OutcomeFull}
	}
	return Decision{Outcome: OutcomePartial, Remaining: required.Sub(amount)}
}
