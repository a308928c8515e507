package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pgdesk/room-service/internal/domain"
)

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, activity_type, description, room_number, guest_name, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		activity.ID,
		activity.ActivityType,
		activity.Description,
		activity.RoomNumber,
		activity.GuestName,
		activity.Amount,
		activity.CreatedAt,
	)

	return err
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	query := `
		SELECT id, activity_type, description, room_number, guest_name, amount, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`

	activities := []*domain.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, limit); err != nil {
		return nil, err
	}

	return activities, nil
}
