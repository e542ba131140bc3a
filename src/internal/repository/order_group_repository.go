package repository

import (
	"context"
	"database/sql"
	"errors"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type OrderGroupRepository struct {
	DB mysql.DBInterface
}

func NewOrderGroupRepository(db mysql.DBInterface) *OrderGroupRepository {
	return &OrderGroupRepository{
		DB: db,
	}
}

// ConsolidationEnabled reports whether the organization opted in to order
// grouping. Off means group rollups are skipped entirely.
func (r *OrderGroupRepository) ConsolidationEnabled(ctx context.Context, orgID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var enabled bool
	query := `SELECT order_consolidation_enabled FROM organization_settings WHERE organization_id = ?`

	err = db.GetContext(ctx, &enabled, query, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return enabled, nil
}

// AllGroupTripsInStatus reports whether every trip of every order in the
// group has a current status among the given types. Empty groups never
// satisfy the predicate.
func (r *OrderGroupRepository) AllGroupTripsInStatus(ctx context.Context, orgID, groupID uint64, statuses []entity.TripStatusType) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	types := make([]string, 0, len(statuses))
	for _, s := range statuses {
		types = append(types, string(s))
	}

	query, args, err := sqlx.In(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN t.last_status_type IN (?) THEN 1 ELSE 0 END), 0) AS matched
		FROM order_trips t
		JOIN orders o ON o.id = t.order_id AND o.organization_id = t.organization_id
		WHERE t.organization_id = ? AND o.group_id = ?
	`, types, orgID, groupID)
	if err != nil {
		return false, err
	}

	var row struct {
		Total   int `db:"total"`
		Matched int `db:"matched"`
	}
	err = db.GetContext(ctx, &row, query, args...)
	if err != nil {
		return false, err
	}

	return row.Total > 0 && row.Total == row.Matched, nil
}

func (r *OrderGroupRepository) HasStatus(ctx context.Context, tx mysql.Executor, orgID, groupID uint64, statusType entity.OrderGroupStatusType) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_group_statuses WHERE organization_id = ? AND group_id = ? AND type = ?`

	err := tx.GetContext(ctx, &count, query, orgID, groupID, string(statusType))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *OrderGroupRepository) CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderGroupStatus) (uint64, error) {
	query := `
		INSERT INTO order_group_statuses (organization_id, group_id, type, created_by_id, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	res, err := tx.ExecContext(ctx, query,
		status.OrganizationID,
		status.GroupID,
		string(status.Type),
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
