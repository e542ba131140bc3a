package entity

import "time"

type OrderStatusType string

const (
	OrderStatusCompleted OrderStatusType = "COMPLETED"
)

// OrderStatusCompletedSeq is the reserved ordinal slot for the COMPLETED
// order status entry.
const OrderStatusCompletedSeq = 4

type OrderGroupStatusType string

const (
	OrderGroupStatusDelivered OrderGroupStatusType = "DELIVERED"
	OrderGroupStatusCompleted OrderGroupStatusType = "COMPLETED"
)

// Order is the parent aggregate of trips. Completion is a derived rollup
// state, never settable directly.
type Order struct {
	ID             uint64     `db:"id"`
	OrganizationID uint64     `db:"organization_id"`
	Code           string     `db:"code"`
	GroupID        *uint64    `db:"group_id"`
	RouteID        *uint64    `db:"route_id"`
	Weight         float64    `db:"weight"`
	UnitOfMeasure  string     `db:"unit_of_measure"`
	OrderDate      *time.Time `db:"order_date"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`

	// joined columns
	GroupCode *string `db:"group_code"`
}

type OrderStatus struct {
	ID             uint64          `db:"id"`
	OrganizationID uint64          `db:"organization_id"`
	OrderID        uint64          `db:"order_id"`
	Type           OrderStatusType `db:"type"`
	Seq            int             `db:"seq"`
	CreatedByID    uint64          `db:"created_by_id"`
	CreatedAt      time.Time       `db:"created_at"`
}

// OrderGroup bundles multiple orders when the organization enables
// order consolidation.
type OrderGroup struct {
	ID             uint64    `db:"id"`
	OrganizationID uint64    `db:"organization_id"`
	Code           string    `db:"code"`
	CreatedAt      time.Time `db:"created_at"`
}

type OrderGroupStatus struct {
	ID             uint64               `db:"id"`
	OrganizationID uint64               `db:"organization_id"`
	GroupID        uint64               `db:"group_id"`
	Type           OrderGroupStatusType `db:"type"`
	CreatedByID    uint64               `db:"created_by_id"`
	CreatedAt      time.Time            `db:"created_at"`
}
