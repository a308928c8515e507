package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pgdesk/room-service/internal/domain"
)

// RoomRepository defines the interface for room and guest data operations
type RoomRepository interface {
	// Create creates a new room
	Create(ctx context.Context, room *domain.Room) error

	// GetByRoomNumber retrieves a room with its guests and payment histories
	GetByRoomNumber(ctx context.Context, roomNumber string) (*domain.Room, error)

	// List retrieves rooms matching the filter, with guests and histories
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)

	// Update updates room fields
	Update(ctx context.Context, room *domain.Room) error

	// Delete removes a room
	Delete(ctx context.Context, roomID uuid.UUID) error

	// Statistics returns room counts by status and the occupancy rate
	Statistics(ctx context.Context) (*domain.RoomStatistics, error)

	// AddGuest inserts a guest with their initial payment rows and bumps the
	// room's occupancy and status in one transaction
	AddGuest(ctx context.Context, room *domain.Room, guest *domain.Guest, initial []*domain.Payment) error

	// UpdateGuest applies partial updates to a guest's details
	UpdateGuest(ctx context.Context, guestID uuid.UUID, update *domain.UpdateGuestRequest) error

	// RemoveGuest deletes a guest (payment history goes with them) and
	// adjusts the room's occupancy and status in one transaction
	RemoveGuest(ctx context.Context, room *domain.Room, guest *domain.Guest) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create records a payment in a guest's ledger
	Create(ctx context.Context, payment *domain.Payment) error

	// SetGuestPaidFlag updates the guest's rent_paid or security_paid flag
	SetGuestPaidFlag(ctx context.Context, guestID uuid.UUID, paymentType string, paid bool) error
}

// ActivityRepository defines the interface for the activity feed
type ActivityRepository interface {
	// Create appends an activity entry
	Create(ctx context.Context, activity *domain.Activity) error

	// ListRecent returns the newest activities, most recent first
	ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// ProposalStore holds pending overpayment proposals between the validate
// and confirm phases
type ProposalStore interface {
	// Save stores a proposal under its token for the store's TTL
	Save(ctx context.Context, proposal *domain.PaymentProposal) error

	// Get retrieves a proposal by token; expired or unknown tokens yield
	// pkg/errors.ErrProposalNotFound
	Get(ctx context.Context, token uuid.UUID) (*domain.PaymentProposal, error)

	// Delete discards a proposal
	Delete(ctx context.Context, token uuid.UUID) error
}
