package repository

import (
	"context"
	"database/sql"
	"errors"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

type DriverReportRepository struct {
	DB mysql.DBInterface
}

func NewDriverReportRepository(db mysql.DBInterface) *DriverReportRepository {
	return &DriverReportRepository{
		DB: db,
	}
}

func (r *DriverReportRepository) FindByStatusType(ctx context.Context, orgID uint64, statusType string) (*entity.DriverReportType, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var report entity.DriverReportType
	query := `
		SELECT id, organization_id, status_type, name
		FROM driver_report_types
		WHERE organization_id = ? AND status_type = ?
	`

	err = db.GetContext(ctx, &report, query, orgID, statusType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &report, nil
}
