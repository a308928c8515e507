package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActivityRoomCreated       = "room_created"
	ActivityRoomUpdated       = "room_updated"
	ActivityRoomDeleted       = "room_deleted"
	ActivityRoomStatusChanged = "room_status_changed"
	ActivityGuestAdded        = "guest_added"
	ActivityGuestUpdated      = "guest_updated"
	ActivityGuestRemoved      = "guest_removed"
	ActivityPaymentReceived   = "payment_received"
	ActivityPaymentCompleted  = "payment_completed"
	ActivityReminderSent      = "reminder_sent"
)

// Activity is one entry in the dashboard's recent-activity feed.
type Activity struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	ActivityType string           `json:"activity_type" db:"activity_type"`
	Description  string           `json:"description" db:"description"`
	RoomNumber   *string          `json:"room_number,omitempty" db:"room_number"`
	GuestName    *string          `json:"guest_name,omitempty" db:"guest_name"`
	Amount       *decimal.Decimal `json:"amount,omitempty" db:"amount"`
	CreatedAt    time.Time        `json:"timestamp" db:"created_at"`
}
