package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

var ErrNotFound = errors.New("entity not found")

type TripRepository struct {
	DB mysql.DBInterface
}

func NewTripRepository(db mysql.DBInterface) *TripRepository {
	return &TripRepository{
		DB: db,
	}
}

const tripSelect = `
	SELECT
		t.id,
		t.organization_id,
		t.order_id,
		t.code,
		t.driver_id,
		t.vehicle_id,
		t.weight,
		t.pickup_date,
		t.delivery_date,
		t.last_status_type,
		t.driver_cost,
		t.bill_of_lading,
		t.bill_of_lading_received,
		t.bill_of_lading_images,
		t.created_at,
		t.updated_at,
		COALESCE(u.full_name, '') AS driver_full_name,
		COALESCE(v.vehicle_number, '') AS vehicle_number
	FROM order_trips t
	LEFT JOIN users u ON u.id = t.driver_id AND u.organization_id = t.organization_id
	LEFT JOIN vehicles v ON v.id = t.vehicle_id AND v.organization_id = t.organization_id
`

func (r *TripRepository) FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Trip, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var trip entity.Trip
	query := tripSelect + ` WHERE t.organization_id = ? AND t.code = ?`

	err = db.GetContext(ctx, &trip, query, orgID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) FindByID(ctx context.Context, orgID, tripID uint64) (*entity.Trip, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var trip entity.Trip
	query := tripSelect + ` WHERE t.organization_id = ? AND t.id = ?`

	err = db.GetContext(ctx, &trip, query, orgID, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) FindUpdatedAt(ctx context.Context, orgID, tripID uint64) (time.Time, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return time.Time{}, err
	}

	var updatedAt time.Time
	query := `SELECT updated_at FROM order_trips WHERE organization_id = ? AND id = ?`

	err = db.GetContext(ctx, &updatedAt, query, orgID, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}

	return updatedAt, nil
}

// BillOfLadingExists reports whether another trip in the organization already
// carries the given bill-of-lading number.
func (r *TripRepository) BillOfLadingExists(ctx context.Context, orgID uint64, number string, excludeTripID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var count int
	query := `
		SELECT COUNT(*) FROM order_trips
		WHERE organization_id = ? AND bill_of_lading = ? AND id != ?
	`

	err = db.GetContext(ctx, &count, query, orgID, number, excludeTripID)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *TripRepository) UpdateLastStatus(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, statusType entity.TripStatusType) error {
	query := `
		UPDATE order_trips
		SET last_status_type = ?, updated_at = NOW()
		WHERE organization_id = ? AND id = ?
	`

	_, err := tx.ExecContext(ctx, query, string(statusType), orgID, tripID)
	return err
}

func (r *TripRepository) UpdateBillOfLading(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, number string, received bool, imageIDs []uint64) error {
	images, err := json.Marshal(imageIDs)
	if err != nil {
		return err
	}

	query := `
		UPDATE order_trips
		SET bill_of_lading = ?,
			bill_of_lading_received = ?,
			bill_of_lading_images = ?,
			last_status_type = ?,
			updated_at = NOW()
		WHERE organization_id = ? AND id = ?
	`

	_, err = tx.ExecContext(ctx, query, number, received, images, string(entity.TripStatusCompleted), orgID, tripID)
	return err
}
