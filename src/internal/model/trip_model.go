package model

import (
	"time"

	"trip-service/src/internal/entity"
)

// AttachmentItem is a pending or already-persisted attachment. Items carrying
// an ID are passed through; items carrying Data are uploaded and minted one.
type AttachmentItem struct {
	ID          *uint64 `json:"id,omitempty"`
	Name        string  `json:"name"`
	ContentType string  `json:"contentType,omitempty"`
	Data        []byte  `json:"data,omitempty"`
}

// OrderContext is the parent-order information the rollup evaluator needs;
// supplied by the caller that planned the order.
type OrderContext struct {
	Code                    string  `json:"code" validate:"required"`
	TotalTripCount          int     `json:"totalTripCount" validate:"gte=0"`
	RemainingWeightCapacity float64 `json:"remainingWeightCapacity"`
}

type EditStatusRequest struct {
	OrganizationID uint64 `json:"-" validate:"required"`
	CreatedByID    uint64 `json:"-" validate:"required"`
	Locale         string `json:"-"`
	Token          string `json:"-"`
	TripCode       string `json:"-" validate:"required"`

	TripID         uint64                `json:"tripId" validate:"required"`
	Type           entity.TripStatusType `json:"type" validate:"required"`
	Notes          *string               `json:"notes,omitempty"`
	DriverReportID *uint64               `json:"driverReportId,omitempty"`
	Attachments    []AttachmentItem      `json:"attachments,omitempty"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	Order          *OrderContext         `json:"order,omitempty"`

	LastUpdatedAt       *time.Time `json:"lastUpdatedAt,omitempty"`
	SkipCheckExclusives bool       `json:"skipCheckExclusives,omitempty"`
	PushNotification    *bool      `json:"pushNotification,omitempty"`
}

type BillOfLadingRequest struct {
	OrganizationID uint64 `json:"-" validate:"required"`
	CreatedByID    uint64 `json:"-" validate:"required"`
	Locale         string `json:"-"`
	Token          string `json:"-"`
	TripCode       string `json:"-" validate:"required"`

	TripID               uint64           `json:"tripId" validate:"required"`
	BillOfLading         string           `json:"billOfLading" validate:"required"`
	BillOfLadingReceived bool             `json:"billOfLadingReceived"`
	Images               []AttachmentItem `json:"images,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
	Order                *OrderContext    `json:"order" validate:"required"`

	LastUpdatedAt       *time.Time `json:"lastUpdatedAt,omitempty"`
	SkipCheckExclusives bool       `json:"skipCheckExclusives,omitempty"`
	PushNotification    *bool      `json:"pushNotification,omitempty"`
}

type GetTripRequest struct {
	OrganizationID uint64 `json:"-" validate:"required"`
	TripCode       string `json:"-" validate:"required"`
}

type EditStatusResponse struct {
	ID uint64 `json:"id"`
}

type BillOfLadingResponse struct {
	ID uint64 `json:"id"`
}

type TripStatusResponse struct {
	ID             uint64     `json:"id"`
	Type           string     `json:"type"`
	Seq            int        `json:"seq"`
	Notes          *string    `json:"notes,omitempty"`
	DriverReportID *uint64    `json:"driverReportId,omitempty"`
	CreatedByID    uint64     `json:"createdById"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type TripResponse struct {
	ID                   uint64               `json:"id"`
	Code                 string               `json:"code"`
	OrderID              uint64               `json:"orderId"`
	DriverID             uint64               `json:"driverId"`
	DriverFullName       string               `json:"driverFullName,omitempty"`
	VehicleNumber        string               `json:"vehicleNumber,omitempty"`
	Weight               float64              `json:"weight"`
	PickupDate           *time.Time           `json:"pickupDate,omitempty"`
	DeliveryDate         *time.Time           `json:"deliveryDate,omitempty"`
	LastStatusType       string               `json:"lastStatusType"`
	BillOfLading         *string              `json:"billOfLading,omitempty"`
	BillOfLadingReceived bool                 `json:"billOfLadingReceived"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	Statuses             []TripStatusResponse `json:"statuses,omitempty"`
}
