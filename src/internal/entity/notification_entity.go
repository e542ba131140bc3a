package entity

import "time"

type NotificationType string

const (
	NotificationTripPendingConfirmation NotificationType = "TRIP_PENDING_CONFIRMATION"
	NotificationTripConfirmed           NotificationType = "TRIP_CONFIRMED"
	NotificationTripStatusChanged       NotificationType = "TRIP_STATUS_CHANGED"
	NotificationBillOfLadingReceived    NotificationType = "BILL_OF_LADING_RECEIVED"
	NotificationOrderStatusChanged      NotificationType = "ORDER_STATUS_CHANGED"
)

// Organization member roles used for role-based broadcast.
const (
	RoleManager    = "MANAGER"
	RoleAccountant = "ACCOUNTANT"
)

// Notification is a typed, organization-scoped event record; Meta carries the
// JSON payload variant for the push channel.
type Notification struct {
	ID             uint64           `db:"id"`
	OrganizationID uint64           `db:"organization_id"`
	Type           NotificationType `db:"type"`
	TargetID       uint64           `db:"target_id"`
	Meta           []byte           `db:"meta"`
	CreatedByID    uint64           `db:"created_by_id"`
	CreatedAt      time.Time        `db:"created_at"`
}

type NotificationRecipient struct {
	ID             uint64    `db:"id"`
	NotificationID uint64    `db:"notification_id"`
	UserID         uint64    `db:"user_id"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}
