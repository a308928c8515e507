package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pgdesk/room-service/internal/domain"
	"github.com/pgdesk/room-service/internal/ledger"
	"github.com/pgdesk/room-service/internal/repository"
	customError "github.com/pgdesk/room-service/pkg/errors"
	"github.com/pgdesk/room-service/pkg/utils"
)

type PaymentService struct {
	roomRepo     repository.RoomRepository
	paymentRepo  repository.PaymentRepository
	activityRepo repository.ActivityRepository
	proposals    repository.ProposalStore
	rooms        *RoomService
}

func NewPaymentService(
	roomRepo repository.RoomRepository,
	paymentRepo repository.PaymentRepository,
	activityRepo repository.ActivityRepository,
	proposals repository.ProposalStore,
	rooms *RoomService,
) *PaymentService {
	return &PaymentService{
		roomRepo:     roomRepo,
		paymentRepo:  paymentRepo,
		activityRepo: activityRepo,
		proposals:    proposals,
		rooms:        rooms,
	}
}

// ProposePayment runs the reconciliation decision for a proposed payment.
// Partial and full payments are recorded immediately. An overpayment is held
// as a proposal and nothing is persisted until ConfirmPayment; the response
// carries the confirmation token and the excess.
func (s *PaymentService) ProposePayment(ctx context.Context, roomNumber string, userID int, request *domain.AddPaymentRequest) (*domain.AddPaymentResponse, error) {
	month, err := resolveMonth(request.PaymentType, request.Month)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	guest := findGuest(room, userID)
	if guest == nil {
		return nil, customError.WrapGuestNotFound(userID, roomNumber)
	}

	required := room.RentAmount
	if request.PaymentType == domain.PaymentTypeSecurity {
		required = room.SecurityDeposit
	}

	totalPaid := ledger.TotalPaid(guest, month, request.PaymentType)
	decision := ledger.Evaluate(request.Amount, totalPaid, required)

	switch decision.Outcome {
	case ledger.OutcomeRejected:
		return nil, customError.WrapInvalidPaymentAmount()

	case ledger.OutcomeOverpayment:
		proposal := &domain.PaymentProposal{
			Token:         uuid.New(),
			RoomNumber:    room.RoomNumber,
			GuestID:       guest.ID,
			UserID:        guest.UserID,
			GuestName:     guest.Username,
			PaymentType:   request.PaymentType,
			Month:         month,
			Amount:        request.Amount,
			PaymentMethod: request.PaymentMethod,
			Notes:         request.Notes,
			TotalPaid:     totalPaid,
			Required:      required,
			Excess:        decision.Excess,
			CreatedAt:     time.Now().UTC(),
		}

		if err := s.proposals.Save(ctx, proposal); err != nil {
			return nil, customError.WrapCacheError(err)
		}

		excess := decision.Excess
		return &domain.AddPaymentResponse{
			Decision:          string(decision.Outcome),
			Month:             month,
			TotalPaid:         totalPaid,
			Required:          required,
			Excess:            &excess,
			ConfirmationToken: &proposal.Token,
			Message: fmt.Sprintf("Payment exceeds the required amount by %s and needs confirmation before it is recorded",
				decision.Excess.String()),
		}, nil
	}

	payment := s.buildPayment(guest.ID, request.PaymentType, month, request, totalPaid, required)
	if err := s.recordPayment(ctx, room, guest.Username, payment); err != nil {
		return nil, err
	}

	resp := &domain.AddPaymentResponse{
		Decision:  string(decision.Outcome),
		Month:     month,
		TotalPaid: totalPaid.Add(request.Amount),
		Required:  required,
	}
	if decision.Outcome == ledger.OutcomePartial {
		remaining := decision.Remaining
		resp.Remaining = &remaining
		resp.Message = fmt.Sprintf("Partial payment recorded, remaining amount: %s", remaining.String())
	} else {
		resp.Message = "Payment completed, full amount received"
	}

	return resp, nil
}

// ConfirmPayment commits a held overpayment proposal with its original
// amount. The proposal is discarded afterwards either way.
func (s *PaymentService) ConfirmPayment(ctx context.Context, token uuid.UUID) (*domain.AddPaymentResponse, error) {
	proposal, err := s.proposals.Get(ctx, token)
	if err != nil {
		if errors.Is(err, customError.ErrProposalNotFound) {
			return nil, customError.WrapProposalNotFound(token.String())
		}
		return nil, customError.WrapCacheError(err)
	}

	// The snapshot behind the proposal may be stale; only re-verify that the
	// guest still exists. The recorded decision stands.
	room, err := s.rooms.GetRoom(ctx, proposal.RoomNumber)
	if err != nil {
		return nil, err
	}
	guest := findGuest(room, proposal.UserID)
	if guest == nil {
		return nil, customError.WrapGuestNotFound(proposal.UserID, proposal.RoomNumber)
	}

	payment := &domain.Payment{
		ID:            uuid.New(),
		GuestID:       proposal.GuestID,
		PaymentType:   proposal.PaymentType,
		Month:         proposal.Month,
		Amount:        proposal.Amount,
		PaymentMethod: proposal.PaymentMethod,
		PaymentDate:   time.Now().UTC(),
		PaymentStatus: domain.PaymentStatusFull,
		Notes:         proposal.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.recordPayment(ctx, room, proposal.GuestName, payment); err != nil {
		return nil, err
	}

	// The payment is already committed; a leftover proposal just expires on
	// its TTL. Failing here would invite a retry that records it twice.
	if err := s.proposals.Delete(ctx, token); err != nil {
		log.Printf("Failed to delete confirmed proposal %s: %v", token, err)
	}

	excess := proposal.Excess
	return &domain.AddPaymentResponse{
		Decision:  string(ledger.OutcomeOverpayment),
		Month:     proposal.Month,
		TotalPaid: proposal.TotalPaid.Add(proposal.Amount),
		Required:  proposal.Required,
		Excess:    &excess,
		Message:   fmt.Sprintf("Overpayment confirmed and recorded, excess: %s", excess.String()),
	}, nil
}

// CancelPayment discards a held proposal without recording anything.
func (s *PaymentService) CancelPayment(ctx context.Context, token uuid.UUID) error {
	if _, err := s.proposals.Get(ctx, token); err != nil {
		if errors.Is(err, customError.ErrProposalNotFound) {
			return customError.WrapProposalNotFound(token.String())
		}
		return customError.WrapCacheError(err)
	}

	if err := s.proposals.Delete(ctx, token); err != nil {
		return customError.WrapCacheError(err)
	}

	return nil
}

func (s *PaymentService) buildPayment(guestID uuid.UUID, paymentType, month string, request *domain.AddPaymentRequest, totalPaid, required decimal.Decimal) *domain.Payment {
	status := domain.PaymentStatusPartial
	if totalPaid.Add(request.Amount).GreaterThanOrEqual(required) {
		status = domain.PaymentStatusFull
	}

	now := time.Now().UTC()
	return &domain.Payment{
		ID:            uuid.New(),
		GuestID:       guestID,
		PaymentType:   paymentType,
		Month:         month,
		Amount:        request.Amount,
		PaymentMethod: request.PaymentMethod,
		PaymentDate:   now,
		PaymentStatus: status,
		Notes:         request.Notes,
		CreatedAt:     now,
	}
}

func (s *PaymentService) recordPayment(ctx context.Context, room *domain.Room, guestName string, payment *domain.Payment) error {
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if payment.PaymentStatus == domain.PaymentStatusFull {
		if err := s.paymentRepo.SetGuestPaidFlag(ctx, payment.GuestID, payment.PaymentType, true); err != nil {
			return customError.WrapDatabaseError(err)
		}
	}

	amount := payment.Amount
	s.rooms.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityPaymentReceived,
		Description: fmt.Sprintf("%s %s payment received from %s for room %s (%s)",
			payment.Amount.String(), payment.PaymentType, guestName, room.RoomNumber, payment.PaymentStatus),
		RoomNumber: &room.RoomNumber,
		GuestName:  &guestName,
		Amount:     &amount,
	})

	if payment.PaymentStatus == domain.PaymentStatusFull {
		scope := "security deposit"
		if payment.PaymentType == domain.PaymentTypeRent {
			scope = fmt.Sprintf("rent for %s", payment.Month)
		}
		s.rooms.logActivity(ctx, &domain.Activity{
			ActivityType: domain.ActivityPaymentCompleted,
			Description:  fmt.Sprintf("Full %s received from %s for room %s", scope, guestName, room.RoomNumber),
			RoomNumber:   &room.RoomNumber,
			GuestName:    &guestName,
		})
	}

	return nil
}

// resolveMonth picks the ledger scope: the operator-selected month for rent,
// the current calendar month for security deposits.
func resolveMonth(paymentType, month string) (string, error) {
	if paymentType == domain.PaymentTypeSecurity {
		return utils.CurrentMonthKey(), nil
	}
	if !utils.IsValidMonthKey(month) {
		return "", customError.WrapInvalidMonthKey(month)
	}
	return month, nil
}
