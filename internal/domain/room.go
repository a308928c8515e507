package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Sharing types fix default capacity, rent and security deposit for a room.
const (
	SharingTypeSingle = "1-sharing"
	SharingTypeDouble = "2-sharing"
	SharingTypeTriple = "3-sharing"
	SharingTypeQuad   = "4-sharing"
)

// Room represents a room entity with its resident guests
type Room struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	RoomNumber       string          `json:"room_number" db:"room_number"`
	RoomType         string          `json:"room_type" db:"room_type"`
	Capacity         int             `json:"capacity" db:"capacity"`
	RentAmount       decimal.Decimal `json:"rent_amount" db:"rent_amount"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit" db:"security_deposit"`
	Status           string          `json:"status" db:"status"`
	CurrentOccupancy int             `json:"current_occupancy" db:"current_occupancy"`
	Guests           []*Guest        `json:"guests" db:"-"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	RoomType   string `json:"room_type" validate:"required,oneof=1-sharing 2-sharing 3-sharing 4-sharing"`
	// Rent and security override the sharing-type defaults when provided.
	RentAmount      *decimal.Decimal `json:"rent_amount,omitempty"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit,omitempty"`
	Status          string           `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}

type UpdateRoomRequest struct {
	RoomType        *string          `json:"room_type,omitempty" validate:"omitempty,oneof=1-sharing 2-sharing 3-sharing 4-sharing"`
	Capacity        *int             `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	RentAmount      *decimal.Decimal `json:"rent_amount,omitempty"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
}

// RoomFilter narrows room listings
type RoomFilter struct {
	RoomType     string
	Status       string
	MinOccupancy *int
	MaxOccupancy *int
}

type RoomStatistics struct {
	TotalRooms       int     `json:"total_rooms"`
	AvailableRooms   int     `json:"available_rooms"`
	OccupiedRooms    int     `json:"occupied_rooms"`
	MaintenanceRooms int     `json:"maintenance_rooms"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}
