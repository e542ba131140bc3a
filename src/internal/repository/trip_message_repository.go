package repository

import (
	"context"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

type TripMessageRepository struct {
	DB mysql.DBInterface
}

func NewTripMessageRepository(db mysql.DBInterface) *TripMessageRepository {
	return &TripMessageRepository{
		DB: db,
	}
}

func (r *TripMessageRepository) Create(ctx context.Context, tx mysql.Executor, message *entity.TripMessage) (uint64, error) {
	query := `
		INSERT INTO order_trip_messages
			(organization_id, trip_id, type, message, latitude, longitude, file_ids, created_by_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`

	res, err := tx.ExecContext(ctx, query,
		message.OrganizationID,
		message.TripID,
		message.Type,
		message.Message,
		message.Latitude,
		message.Longitude,
		message.FileIDs,
		message.CreatedByID,
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return uint64(id), nil
}
