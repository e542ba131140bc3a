package repository

import (
	"context"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

type TripStatusRepository struct {
	DB mysql.DBInterface
}

func NewTripStatusRepository(db mysql.DBInterface) *TripStatusRepository {
	return &TripStatusRepository{
		DB: db,
	}
}

// CountByTrip returns the number of existing status entries for a trip. The
// next ordinal is count+1; callers must run this inside the same transaction
// as the insert so the sequence stays gapless under the optimistic model.
func (r *TripStatusRepository) CountByTrip(ctx context.Context, tx mysql.Executor, orgID, tripID uint64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_trip_statuses WHERE organization_id = ? AND trip_id = ?`

	err := tx.GetContext(ctx, &count, query, orgID, tripID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TripStatusRepository) Create(ctx context.Context, tx mysql.Executor, status *entity.TripStatus) (uint64, error) {
	query := `
		INSERT INTO order_trip_statuses
			(organization_id, trip_id, type, seq, notes, driver_report_id, created_by_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`

	res, err := tx.ExecContext(ctx, query,
		status.OrganizationID,
		status.TripID,
		string(status.Type),
		status.Seq,
		status.Notes,
		status.DriverReportID,
		status.CreatedByID,
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

func (r *TripStatusRepository) History(ctx context.Context, orgID, tripID uint64) ([]entity.TripStatus, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var statuses []entity.TripStatus
	query := `
		SELECT id, organization_id, trip_id, type, seq, notes, driver_report_id, created_by_id, created_at
		FROM order_trip_statuses
		WHERE organization_id = ? AND trip_id = ?
		ORDER BY seq ASC
	`

	err = db.SelectContext(ctx, &statuses, query, orgID, tripID)
	if err != nil {
		return nil, err
	}

	return statuses, nil
}
