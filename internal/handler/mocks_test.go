package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pgdesk/room-service/internal/domain"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByRoomNumber(ctx context.Context, roomNumber string) (*domain.Room, error) {
	args := m.Called(ctx, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockRoomRepository) Statistics(ctx context.Context) (*domain.RoomStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomStatistics), args.Error(1)
}

func (m *MockRoomRepository) AddGuest(ctx context.Context, room *domain.Room, guest *domain.Guest, initial []*domain.Payment) error {
	args := m.Called(ctx, room, guest, initial)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateGuest(ctx context.Context, guestID uuid.UUID, update *domain.UpdateGuestRequest) error {
	args := m.Called(ctx, guestID, update)
	return args.Error(0)
}

func (m *MockRoomRepository) RemoveGuest(ctx context.Context, room *domain.Room, guest *domain.Guest) error {
	args := m.Called(ctx, room, guest)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SetGuestPaidFlag(ctx context.Context, guestID uuid.UUID, paymentType string, paid bool) error {
	args := m.Called(ctx, guestID, paymentType, paid)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

type MockProposalStore struct {
	mock.Mock
}

func (m *MockProposalStore) Save(ctx context.Context, proposal *domain.PaymentProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalStore) Get(ctx context.Context, token uuid.UUID) (*domain.PaymentProposal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentProposal), args.Error(1)
}

func (m *MockProposalStore) Delete(ctx context.Context, token uuid.UUID) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
