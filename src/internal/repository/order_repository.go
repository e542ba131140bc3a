package repository

import (
	"context"
	"database/sql"
	"errors"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type OrderRepository struct {
	DB mysql.DBInterface
}

func NewOrderRepository(db mysql.DBInterface) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

const orderSelect = `
	SELECT
		o.id,
		o.organization_id,
		o.code,
		o.group_id,
		o.route_id,
		o.weight,
		o.unit_of_measure,
		o.order_date,
		o.created_at,
		o.updated_at,
		g.code AS group_code
	FROM orders o
	LEFT JOIN order_groups g ON g.id = o.group_id AND g.organization_id = o.organization_id
`

func (r *OrderRepository) FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var order entity.Order
	query := orderSelect + ` WHERE o.organization_id = ? AND o.code = ?`

	err = db.GetContext(ctx, &order, query, orgID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, orgID, orderID uint64) (*entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var order entity.Order
	query := orderSelect + ` WHERE o.organization_id = ? AND o.id = ?`

	err = db.GetContext(ctx, &order, query, orgID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

// CountTripsInStatus counts the order's trips whose current status is one of
// the given types. The rollup evaluator re-derives completion from this fresh
// on every call.
func (r *OrderRepository) CountTripsInStatus(ctx context.Context, orgID uint64, orderCode string, statuses []entity.TripStatusType) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	types := make([]string, 0, len(statuses))
	for _, s := range statuses {
		types = append(types, string(s))
	}

	query, args, err := sqlx.In(`
		SELECT COUNT(*)
		FROM order_trips t
		JOIN orders o ON o.id = t.order_id AND o.organization_id = t.organization_id
		WHERE t.organization_id = ? AND o.code = ? AND t.last_status_type IN (?)
	`, orgID, orderCode, types)
	if err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) HasStatus(ctx context.Context, tx mysql.Executor, orgID, orderID uint64, statusType entity.OrderStatusType) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_statuses WHERE organization_id = ? AND order_id = ? AND type = ?`

	err := tx.GetContext(ctx, &count, query, orgID, orderID, string(statusType))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *OrderRepository) CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderStatus) (uint64, error) {
	query := `
		INSERT INTO order_statuses (organization_id, order_id, type, seq, created_by_id, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`

	res, err := tx.ExecContext(ctx, query,
		status.OrganizationID,
		status.OrderID,
		string(status.Type),
		status.Seq,
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

// PickupPointLabel resolves the human-readable label of the order route's
// pickup point for notification payload enrichment.
func (r *OrderRepository) PickupPointLabel(ctx context.Context, orgID, orderID uint64) (string, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return "", err
	}

	var label string
	query := `
		SELECT COALESCE(p.name, '')
		FROM orders o
		JOIN route_points p ON p.route_id = o.route_id AND p.organization_id = o.organization_id
		WHERE o.organization_id = ? AND o.id = ? AND p.type = 'PICKUP'
		ORDER BY p.display_order ASC
		LIMIT 1
	`

	err = db.GetContext(ctx, &label, query, orgID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return label, nil
}
