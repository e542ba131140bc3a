package entity

import "time"

// TripStatusType enumerates the trip lifecycle. The recorder appends whatever
// status the caller supplies; legality of the next state is owned by callers.
type TripStatusType string

const (
	TripStatusPendingConfirmation    TripStatusType = "PENDING_CONFIRMATION"
	TripStatusConfirmed              TripStatusType = "CONFIRMED"
	TripStatusWaitingForPickup       TripStatusType = "WAITING_FOR_PICKUP"
	TripStatusWarehouseGoingToPickup TripStatusType = "WAREHOUSE_GOING_TO_PICKUP"
	TripStatusWarehousePickedUp      TripStatusType = "WAREHOUSE_PICKED_UP"
	TripStatusWaitingForDelivery     TripStatusType = "WAITING_FOR_DELIVERY"
	TripStatusDelivered              TripStatusType = "DELIVERED"
	TripStatusCompleted              TripStatusType = "COMPLETED"
	TripStatusCanceled               TripStatusType = "CANCELED"
)

// Trip is one vehicle/driver leg fulfilling part of an order.
// updated_at is the optimistic-concurrency token: every status transition
// bumps it, and writers must present the value they last read.
type Trip struct {
	ID                   uint64     `db:"id"`
	OrganizationID       uint64     `db:"organization_id"`
	OrderID              uint64     `db:"order_id"`
	Code                 string     `db:"code"`
	DriverID             uint64     `db:"driver_id"`
	VehicleID            uint64     `db:"vehicle_id"`
	Weight               float64    `db:"weight"`
	PickupDate           *time.Time `db:"pickup_date"`
	DeliveryDate         *time.Time `db:"delivery_date"`
	LastStatusType       string     `db:"last_status_type"`
	DriverCost           float64    `db:"driver_cost"`
	BillOfLading         *string    `db:"bill_of_lading"`
	BillOfLadingReceived bool       `db:"bill_of_lading_received"`
	BillOfLadingImages   []byte     `db:"bill_of_lading_images"` // JSON array of upload file ids
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`

	// joined columns
	DriverFullName string `db:"driver_full_name"`
	VehicleNumber  string `db:"vehicle_number"`
}

// TripStatus is an immutable history entry. Seq strictly increases per trip
// and is never reused; the current status is the row with the highest Seq.
type TripStatus struct {
	ID             uint64         `db:"id"`
	OrganizationID uint64         `db:"organization_id"`
	TripID         uint64         `db:"trip_id"`
	Type           TripStatusType `db:"type"`
	Seq            int            `db:"seq"`
	Notes          *string        `db:"notes"`
	DriverReportID *uint64        `db:"driver_report_id"`
	CreatedByID    uint64         `db:"created_by_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

// TripMessage is a communication/audit record tied to a transition.
type TripMessage struct {
	ID             uint64    `db:"id"`
	OrganizationID uint64    `db:"organization_id"`
	TripID         uint64    `db:"trip_id"`
	Type           *string   `db:"type"`
	Message        string    `db:"message"`
	Latitude       *float64  `db:"latitude"`
	Longitude      *float64  `db:"longitude"`
	FileIDs        []byte    `db:"file_ids"` // JSON array of upload file ids
	CreatedByID    uint64    `db:"created_by_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// DriverReportType is org-scoped reference data resolved by workflow status.
type DriverReportType struct {
	ID             uint64 `db:"id"`
	OrganizationID uint64 `db:"organization_id"`
	StatusType     string `db:"status_type"`
	Name           string `db:"name"`
}

type UploadFile struct {
	ID             uint64    `db:"id"`
	OrganizationID uint64    `db:"organization_id"`
	Path           string    `db:"path"`
	Name           string    `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
}

type User struct {
	ID             uint64 `db:"id"`
	OrganizationID uint64 `db:"organization_id"`
	FullName       string `db:"full_name"`
}
