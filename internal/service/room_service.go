package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/pgdesk/room-service/internal/config"
	"github.com/pgdesk/room-service/internal/domain"
	"github.com/pgdesk/room-service/internal/ledger"
	"github.com/pgdesk/room-service/internal/repository"
	customError "github.com/pgdesk/room-service/pkg/errors"
	"github.com/pgdesk/room-service/pkg/utils"
)

const statsCacheKey = "rooms:statistics"

type RoomService struct {
	roomRepo     repository.RoomRepository
	activityRepo repository.ActivityRepository
	redis        *redis.Client
	config       *config.Config
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	activityRepo repository.ActivityRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *RoomService {
	return &RoomService{
		roomRepo:     roomRepo,
		activityRepo: activityRepo,
		redis:        redisClient,
		config:       cfg,
	}
}

// CreateRoom creates a room. Rent and security deposit default from the
// sharing-type table when the request leaves them out; the stored values are
// the source of truth for all later validation.
func (s *RoomService) CreateRoom(ctx context.Context, request *domain.CreateRoomRequest) (*domain.Room, error) {
	existing, err := s.roomRepo.GetByRoomNumber(ctx, request.RoomNumber)
	if err == nil && existing != nil {
		return nil, customError.WrapRoomAlreadyExists(request.RoomNumber)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	rent := ledger.DefaultRent(request.RoomType)
	if request.RentAmount != nil {
		rent = *request.RentAmount
	}
	security := ledger.DefaultSecurity(request.RoomType)
	if request.SecurityDeposit != nil {
		security = *request.SecurityDeposit
	}

	status := request.Status
	if status == "" {
		status = domain.RoomStatusAvailable
	}

	now := time.Now().UTC()
	room := &domain.Room{
		ID:              uuid.New(),
		RoomNumber:      request.RoomNumber,
		RoomType:        request.RoomType,
		Capacity:        ledger.Capacity(request.RoomType),
		RentAmount:      rent,
		SecurityDeposit: security,
		Status:          status,
		Guests:          []*domain.Guest{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityRoomCreated,
		Description:  fmt.Sprintf("Room %s (%s) created", room.RoomNumber, room.RoomType),
		RoomNumber:   &room.RoomNumber,
	})

	s.invalidateStatistics(ctx)

	return room, nil
}

// GetRoom returns a room snapshot with nested guests and payment histories.
func (s *RoomService) GetRoom(ctx context.Context, roomNumber string) (*domain.Room, error) {
	room, err := s.roomRepo.GetByRoomNumber(ctx, roomNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapRoomNotFound(roomNumber)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return room, nil
}

// ListRooms returns rooms matching the filter.
func (s *RoomService) ListRooms(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rooms, nil
}

// UpdateRoom applies a partial update to a room.
func (s *RoomService) UpdateRoom(ctx context.Context, roomNumber string, request *domain.UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	if request.RoomType != nil {
		room.RoomType = *request.RoomType
		room.Capacity = ledger.Capacity(*request.RoomType)
	}
	if request.Capacity != nil {
		room.Capacity = *request.Capacity
	}
	if request.RentAmount != nil {
		room.RentAmount = *request.RentAmount
	}
	if request.SecurityDeposit != nil {
		room.SecurityDeposit = *request.SecurityDeposit
	}
	if request.Status != nil {
		room.Status = *request.Status
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityRoomUpdated,
		Description:  fmt.Sprintf("Room %s details updated", room.RoomNumber),
		RoomNumber:   &room.RoomNumber,
	})

	s.invalidateStatistics(ctx)

	return room, nil
}

// DeleteRoom removes a room. Deletion is refused while anyone still lives
// there.
func (s *RoomService) DeleteRoom(ctx context.Context, roomNumber string) error {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return err
	}

	if room.CurrentOccupancy > 0 {
		return customError.WrapRoomOccupied(roomNumber)
	}

	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityRoomDeleted,
		Description:  fmt.Sprintf("Room %s deleted", room.RoomNumber),
		RoomNumber:   &room.RoomNumber,
	})

	s.invalidateStatistics(ctx)

	return nil
}

// Statistics returns room occupancy statistics, served from the Redis cache
// when fresh.
func (s *RoomService) Statistics(ctx context.Context) (*domain.RoomStatistics, error) {
	if s.redis != nil {
		if payload, err := s.redis.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached domain.RoomStatistics
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.roomRepo.Statistics(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, payload, s.config.GetStatsCacheTTL()).Err(); err != nil {
				log.Printf("Failed to cache room statistics: %v", err)
			}
		}
	}

	return stats, nil
}

// AddGuest onboards a guest into a room. The initial rent and security
// amounts are validated with the stricter creation-time rule: positive and
// capped at the room's stored requirement, no confirmable overpayment. Both
// initial payments are persisted as real ledger rows so they count toward
// later monthly totals.
func (s *RoomService) AddGuest(ctx context.Context, roomNumber string, request *domain.AddGuestRequest) (*domain.Guest, error) {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	if room.CurrentOccupancy >= room.Capacity {
		return nil, customError.WrapRoomFull(roomNumber)
	}

	if decision := ledger.EvaluateInitial(request.RentAmountPaid, room.RentAmount); decision.Outcome == ledger.OutcomeRejected {
		return nil, initialPaymentError(decision, domain.PaymentTypeRent, room.RentAmount)
	}
	if decision := ledger.EvaluateInitial(request.SecurityAmountPaid, room.SecurityDeposit); decision.Outcome == ledger.OutcomeRejected {
		return nil, initialPaymentError(decision, domain.PaymentTypeSecurity, room.SecurityDeposit)
	}

	now := time.Now().UTC()
	joined := now
	if request.DateOfJoining != nil {
		joined = request.DateOfJoining.UTC()
	}

	guest := &domain.Guest{
		ID:            uuid.New(),
		RoomID:        room.ID,
		Username:      request.Username,
		Phone:         request.Phone,
		Email:         request.Email,
		Aadhar:        request.Aadhar,
		DateOfJoining: joined,
		RentPaid:      request.RentAmountPaid.Equal(room.RentAmount),
		SecurityPaid:  request.SecurityAmountPaid.Equal(room.SecurityDeposit),
		CreatedAt:     now,
	}

	month := utils.CurrentMonthKey()
	initial := []*domain.Payment{
		initialPaymentRecord(guest.ID, domain.PaymentTypeRent, month, request.RentAmountPaid, room.RentAmount,
			defaultMethod(request.RentPaymentMethod), "Initial rent payment at move-in", now),
		initialPaymentRecord(guest.ID, domain.PaymentTypeSecurity, month, request.SecurityAmountPaid, room.SecurityDeposit,
			defaultMethod(request.SecurityPaymentMethod), "Initial security deposit", now),
	}

	if err := s.roomRepo.AddGuest(ctx, room, guest, initial); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	guest.RentHistory = initial[:1]
	guest.SecurityHistory = initial[1:]

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityGuestAdded,
		Description:  fmt.Sprintf("Guest %s added to room %s", guest.Username, room.RoomNumber),
		RoomNumber:   &room.RoomNumber,
		GuestName:    &guest.Username,
	})

	s.invalidateStatistics(ctx)

	return guest, nil
}

// UpdateGuest applies a partial update to a guest's contact details.
func (s *RoomService) UpdateGuest(ctx context.Context, roomNumber string, userID int, request *domain.UpdateGuestRequest) error {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return err
	}

	guest := findGuest(room, userID)
	if guest == nil {
		return customError.WrapGuestNotFound(userID, roomNumber)
	}

	if err := s.roomRepo.UpdateGuest(ctx, guest.ID, request); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityGuestUpdated,
		Description:  fmt.Sprintf("Guest %s details updated in room %s", guest.Username, room.RoomNumber),
		RoomNumber:   &room.RoomNumber,
		GuestName:    &guest.Username,
	})

	return nil
}

// RemoveGuest removes a guest; their ledger history is discarded with them.
func (s *RoomService) RemoveGuest(ctx context.Context, roomNumber string, userID int) error {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return err
	}

	guest := findGuest(room, userID)
	if guest == nil {
		return customError.WrapGuestNotFound(userID, roomNumber)
	}

	if err := s.roomRepo.RemoveGuest(ctx, room, guest); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.logActivity(ctx, &domain.Activity{
		ActivityType: domain.ActivityGuestRemoved,
		Description:  fmt.Sprintf("Guest %s removed from room %s", guest.Username, room.RoomNumber),
		RoomNumber:   &room.RoomNumber,
		GuestName:    &guest.Username,
	})

	s.invalidateStatistics(ctx)

	return nil
}

func (s *RoomService) logActivity(ctx context.Context, activity *domain.Activity) {
	activity.ID = uuid.New()
	activity.CreatedAt = time.Now().UTC()
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		log.Printf("Failed to log activity %s: %v", activity.ActivityType, err)
	}
}

func (s *RoomService) invalidateStatistics(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate statistics cache: %v", err)
	}
}

func findGuest(room *domain.Room, userID int) *domain.Guest {
	for _, guest := range room.Guests {
		if guest.UserID == userID {
			return guest
		}
	}
	return nil
}

func defaultMethod(method string) string {
	if method == "" {
		return "UPI"
	}
	return method
}

func initialPaymentError(decision ledger.Decision, paymentType string, required decimal.Decimal) error {
	if decision.Reason == "cannot exceed required amount" {
		return customError.WrapInitialPaymentExceeds(paymentType, required.String())
	}
	return customError.WrapInvalidPaymentAmount()
}

func initialPaymentRecord(guestID uuid.UUID, paymentType, month string, amount, required decimal.Decimal, method, notes string, now time.Time) *domain.Payment {
	status := domain.PaymentStatusPartial
	if amount.GreaterThanOrEqual(required) {
		status = domain.PaymentStatusFull
	}

	return &domain.Payment{
		ID:            uuid.New(),
		GuestID:       guestID,
		PaymentType:   paymentType,
		Month:         month,
		Amount:        amount,
		PaymentMethod: method,
		PaymentDate:   now,
		PaymentStatus: status,
		Notes:         notes,
		CreatedAt:     now,
	}
}
