package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pgdesk/room-service/internal/config"
	"github.com/pgdesk/room-service/internal/domain"
	customError "github.com/pgdesk/room-service/pkg/errors"
)

type roomServiceMocks struct {
	roomRepo     *MockRoomRepository
	activityRepo *MockActivityRepository
}

func newTestRoomService() (*RoomService, *roomServiceMocks) {
	m := &roomServiceMocks{
		roomRepo:     new(MockRoomRepository),
		activityRepo: new(MockActivityRepository),
	}
	svc := NewRoomService(m.roomRepo, m.activityRepo, nil, &config.Config{})
	return svc, m
}

func TestCreateRoom_DefaultsFromSharingType(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "201").Return(nil, sql.ErrNoRows)
	m.roomRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Capacity == 2 &&
			r.RentAmount.Equal(decimal.NewFromInt(10000)) &&
			r.SecurityDeposit.Equal(decimal.NewFromInt(5000)) &&
			r.Status == domain.RoomStatusAvailable
	})).Return(nil)
	m.activityRepo.On("Create", ctx, mock.Anything).Return(nil)

	room, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{
		RoomNumber: "201",
		RoomType:   domain.SharingTypeDouble,
	})

	assert.NoError(t, err)
	assert.Equal(t, "201", room.RoomNumber)
	m.roomRepo.AssertExpectations(t)
}

func TestCreateRoom_ExplicitAmountsOverrideDefaults(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	rent := decimal.NewFromInt(12000)
	security := decimal.NewFromInt(6000)

	m.roomRepo.On("GetByRoomNumber", ctx, "202").Return(nil, sql.ErrNoRows)
	m.roomRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.RentAmount.Equal(rent) && r.SecurityDeposit.Equal(security)
	})).Return(nil)
	m.activityRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{
		RoomNumber:      "202",
		RoomType:        domain.SharingTypeDouble,
		RentAmount:      &rent,
		SecurityDeposit: &security,
	})

	assert.NoError(t, err)
	m.roomRepo.AssertExpectations(t)
}

func TestCreateRoom_DuplicateRoomNumber(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(), nil)

	_, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   domain.SharingTypeDouble,
	})

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeRoomAlreadyExists, be.Code)
	}
	m.roomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetRoom_NotFound(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "999").Return(nil, sql.ErrNoRows)

	_, err := svc.GetRoom(ctx, "999")

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeRoomNotFound, be.Code)
	}
}

func TestUpdateRoom_TypeChangeResetsCapacity(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(), nil)
	m.roomRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.RoomType == domain.SharingTypeTriple && r.Capacity == 3
	})).Return(nil)
	m.activityRepo.On("Create", ctx, mock.Anything).Return(nil)

	roomType := domain.SharingTypeTriple
	room, err := svc.UpdateRoom(ctx, "101", &domain.UpdateRoomRequest{RoomType: &roomType})

	assert.NoError(t, err)
	assert.Equal(t, 3, room.Capacity)
	m.roomRepo.AssertExpectations(t)
}

func TestDeleteRoom_RefusedWhileOccupied(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(testGuest(1)), nil)

	err := svc.DeleteRoom(ctx, "101")

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeRoomOccupied, be.Code)
	}
	m.roomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddGuest_PersistsInitialPayments(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	room := testRoom()
	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(room, nil)
	m.roomRepo.On("AddGuest", ctx, room, mock.MatchedBy(func(g *domain.Guest) bool {
		return !g.RentPaid && g.SecurityPaid
	}), mock.MatchedBy(func(initial []*domain.Payment) bool {
		return len(initial) == 2 &&
			initial[0].PaymentType == domain.PaymentTypeRent &&
			initial[0].PaymentStatus == domain.PaymentStatusPartial &&
			initial[1].PaymentType == domain.PaymentTypeSecurity &&
			initial[1].PaymentStatus == domain.PaymentStatusFull
	})).Return(nil)
	m.activityRepo.On("Create", ctx, mock.Anything).Return(nil)

	guest, err := svc.AddGuest(ctx, "101", &domain.AddGuestRequest{
		Username:           "meena",
		Phone:              "9876543210",
		Email:              "meena@example.com",
		Aadhar:             "123412341234",
		RentAmountPaid:     decimal.NewFromInt(4000),
		SecurityAmountPaid: decimal.NewFromInt(5000),
	})

	assert.NoError(t, err)
	assert.Len(t, guest.RentHistory, 1)
	assert.Len(t, guest.SecurityHistory, 1)
	m.roomRepo.AssertExpectations(t)
}

func TestAddGuest_InitialSecurityAboveRequiredRejected(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(), nil)

	_, err := svc.AddGuest(ctx, "101", &domain.AddGuestRequest{
		Username:           "meena",
		Phone:              "9876543210",
		Email:              "meena@example.com",
		Aadhar:             "123412341234",
		RentAmountPaid:     decimal.NewFromInt(4000),
		SecurityAmountPaid: decimal.NewFromInt(6000),
	})

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeInitialPaymentExceeds, be.Code)
	}
	// Onboarding offers no confirmation path; the guest is never created.
	m.roomRepo.AssertNotCalled(t, "AddGuest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddGuest_NonPositiveInitialRentRejected(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(), nil)

	_, err := svc.AddGuest(ctx, "101", &domain.AddGuestRequest{
		Username:           "meena",
		Phone:              "9876543210",
		Email:              "meena@example.com",
		Aadhar:             "123412341234",
		RentAmountPaid:     decimal.Zero,
		SecurityAmountPaid: decimal.NewFromInt(5000),
	})

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeInvalidPaymentAmount, be.Code)
	}
	m.roomRepo.AssertNotCalled(t, "AddGuest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddGuest_RoomAtCapacity(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	full := testRoom(testGuest(1), testGuest(2))
	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(full, nil)

	_, err := svc.AddGuest(ctx, "101", &domain.AddGuestRequest{
		Username:           "meena",
		Phone:              "9876543210",
		Email:              "meena@example.com",
		Aadhar:             "123412341234",
		RentAmountPaid:     decimal.NewFromInt(4000),
		SecurityAmountPaid: decimal.NewFromInt(5000),
	})

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeRoomFull, be.Code)
	}
}

func TestRemoveGuest_UnknownUserID(t *testing.T) {
	svc, m := newTestRoomService()
	ctx := context.Background()

	m.roomRepo.On("GetByRoomNumber", ctx, "101").Return(testRoom(testGuest(1)), nil)

	err := svc.RemoveGuest(ctx, "101", 42)

	var be *customError.BusinessError
	if assert.ErrorAs(t, err, &be) {
		assert.Equal(t, customError.ErrCodeGuestNotFound, be.Code)
	}
	m.roomRepo.AssertNotCalled(t, "RemoveGuest", mock.Anything, mock.Anything, mock.Anything)
}
