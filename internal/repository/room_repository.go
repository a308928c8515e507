package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pgdesk/room-service/internal/domain"
)

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, room_type, capacity, rent_amount, security_deposit, status, current_occupancy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Capacity,
		room.RentAmount,
		room.SecurityDeposit,
		room.Status,
		room.CurrentOccupancy,
		room.CreatedAt,
		room.UpdatedAt,
	)

	return err
}

func (r *roomRepository) GetByRoomNumber(ctx context.Context, roomNumber string) (*domain.Room, error) {
	query := `
		SELECT id, room_number, room_type, capacity, rent_amount, security_deposit, status, current_occupancy, created_at, updated_at
		FROM rooms
		WHERE room_number = $1
	`

	var room domain.Room
	if err := r.db.GetContext(ctx, &room, query, roomNumber); err != nil {
		return nil, err
	}

	if err := r.loadGuests(ctx, []*domain.Room{&room}); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	query := `
		SELECT id, room_number, room_type, capacity, rent_amount, security_deposit, status, current_occupancy, created_at, updated_at
		FROM rooms
		WHERE ($1 = '' OR room_type = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3::int IS NULL OR current_occupancy >= $3)
		  AND ($4::int IS NULL OR current_occupancy <= $4)
		ORDER BY room_number
	`

	rooms := []*domain.Room{}
	err := r.db.SelectContext(ctx, &rooms, query,
		filter.RoomType,
		filter.Status,
		filter.MinOccupancy,
		filter.MaxOccupancy,
	)
	if err != nil {
		return nil, err
	}

	if err := r.loadGuests(ctx, rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}

// loadGuests populates each room's guests along with their rent and
// security payment histories.
func (r *roomRepository) loadGuests(ctx context.Context, rooms []*domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	roomIDs := make([]uuid.UUID, 0, len(rooms))
	byRoomID := make(map[uuid.UUID]*domain.Room, len(rooms))
	for _, room := range rooms {
		room.Guests = []*domain.Guest{}
		roomIDs = append(roomIDs, room.ID)
		byRoomID[room.ID] = room
	}

	query, args, err := sqlx.In(`
		SELECT id, room_id, user_id, username, phone, email, aadhar, date_of_joining, date_of_leaving, rent_paid, security_paid, created_at
		FROM guests
		WHERE room_id IN (?)
		ORDER BY room_id, user_id
	`, roomIDs)
	if err != nil {
		return err
	}

	guests := []*domain.Guest{}
	if err := r.db.SelectContext(ctx, &guests, r.db.Rebind(query), args...); err != nil {
		return err
	}

	if len(guests) == 0 {
		return nil
	}

	guestIDs := make([]uuid.UUID, 0, len(guests))
	byGuestID := make(map[uuid.UUID]*domain.Guest, len(guests))
	for _, guest := range guests {
		guest.RentHistory = []*domain.Payment{}
		guest.SecurityHistory = []*domain.Payment{}
		guestIDs = append(guestIDs, guest.ID)
		byGuestID[guest.ID] = guest

		if room, ok := byRoomID[guest.RoomID]; ok {
			room.Guests = append(room.Guests, guest)
		}
	}

	query, args, err = sqlx.In(`
		SELECT id, guest_id, payment_type, month, amount, payment_method, payment_date, payment_status, notes, created_at
		FROM payments
		WHERE guest_id IN (?)
		ORDER BY payment_date
	`, guestIDs)
	if err != nil {
		return err
	}

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(query), args...); err != nil {
		return err
	}

	for _, payment := range payments {
		guest, ok := byGuestID[payment.GuestID]
		if !ok {
			continue
		}
		if payment.PaymentType == domain.PaymentTypeSecurity {
			guest.SecurityHistory = append(guest.SecurityHistory, payment)
		} else {
			guest.RentHistory = append(guest.RentHistory, payment)
		}
	}

	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET room_type = $2, capacity = $3, rent_amount = $4, security_deposit = $5, status = $6, current_occupancy = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomType,
		room.Capacity,
		room.RentAmount,
		room.SecurityDeposit,
		room.Status,
		room.CurrentOccupancy,
		time.Now().UTC(),
	)

	return err
}

func (r *roomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	return err
}

func (r *roomRepository) Statistics(ctx context.Context) (*domain.RoomStatistics, error) {
	query := `
		SELECT
			COUNT(*) AS total_rooms,
			COUNT(*) FILTER (WHERE status = 'available') AS available_rooms,
			COUNT(*) FILTER (WHERE status = 'occupied') AS occupied_rooms,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance_rooms
		FROM rooms
	`

	var stats struct {
		TotalRooms       int `db:"total_rooms"`
		AvailableRooms   int `db:"available_rooms"`
		OccupiedRooms    int `db:"occupied_rooms"`
		MaintenanceRooms int `db:"maintenance_rooms"`
	}
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	result := &domain.RoomStatistics{
		TotalRooms:       stats.TotalRooms,
		AvailableRooms:   stats.AvailableRooms,
		OccupiedRooms:    stats.OccupiedRooms,
		MaintenanceRooms: stats.MaintenanceRooms,
	}
	if stats.TotalRooms > 0 {
		result.OccupancyRate = float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
	}

	return result, nil
}

func (r *roomRepository) AddGuest(ctx context.Context, room *domain.Room, guest *domain.Guest, initial []*domain.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Sequential user id within the room.
	var nextUserID int
	err = tx.GetContext(ctx, &nextUserID,
		`SELECT COALESCE(MAX(user_id), 0) + 1 FROM guests WHERE room_id = $1`, room.ID)
	if err != nil {
		return err
	}
	guest.UserID = nextUserID

	_, err = tx.ExecContext(ctx, `
		INSERT INTO guests (id, room_id, user_id, username, phone, email, aadhar, date_of_joining, rent_paid, security_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		guest.ID,
		guest.RoomID,
		guest.UserID,
		guest.Username,
		guest.Phone,
		guest.Email,
		guest.Aadhar,
		guest.DateOfJoining,
		guest.RentPaid,
		guest.SecurityPaid,
		guest.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, payment := range initial {
		if err := insertPayment(ctx, tx, payment); err != nil {
			return err
		}
	}

	newOccupancy := room.CurrentOccupancy + 1
	newStatus := room.Status
	if newOccupancy >= room.Capacity {
		newStatus = domain.RoomStatusOccupied
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE rooms SET current_occupancy = $2, status = $3, updated_at = $4 WHERE id = $1
	`, room.ID, newOccupancy, newStatus, time.Now().UTC())
	if err != nil {
		return err
	}

	room.CurrentOccupancy = newOccupancy
	room.Status = newStatus

	return tx.Commit()
}

func (r *roomRepository) UpdateGuest(ctx context.Context, guestID uuid.UUID, update *domain.UpdateGuestRequest) error {
	query := `
		UPDATE guests
		SET username = COALESCE($2, username),
		    phone = COALESCE($3, phone),
		    email = COALESCE($4, email),
		    aadhar = COALESCE($5, aadhar),
		    date_of_leaving = COALESCE($6, date_of_leaving)
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		guestID,
		update.Username,
		update.Phone,
		update.Email,
		update.Aadhar,
		update.DateOfLeaving,
	)

	return err
}

func (r *roomRepository) RemoveGuest(ctx context.Context, room *domain.Room, guest *domain.Guest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Payments cascade with the guest row.
	if _, err := tx.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, guest.ID); err != nil {
		return err
	}

	newOccupancy := room.CurrentOccupancy - 1
	if newOccupancy < 0 {
		newOccupancy = 0
	}
	newStatus := room.Status
	if newOccupancy == 0 && room.Status == domain.RoomStatusOccupied {
		newStatus = domain.RoomStatusAvailable
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE rooms SET current_occupancy = $2, status = $3, updated_at = $4 WHERE id = $1
	`, room.ID, newOccupancy, newStatus, time.Now().UTC())
	if err != nil {
		return err
	}

	room.CurrentOccupancy = newOccupancy
	room.Status = newStatus

	return tx.Commit()
}
