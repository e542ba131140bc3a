package model

import (
	"time"

	"trip-service/src/internal/entity"
)

// TaskNotificationDispatch is the asynq task type the notification worker
// consumes. Tasks are enqueued strictly after the status transaction commits.
const TaskNotificationDispatch = "notification:dispatch"

// Notification task kinds.
const (
	KindTripStatus     = "trip-status"
	KindBillOfLading   = "bill-of-lading"
	KindOrderCompleted = "order-completed"
)

// NotificationTask is the outbox payload enqueued post-commit. The worker
// re-reads everything it needs for enrichment; the task only pins identity.
type NotificationTask struct {
	ID                   string                `json:"id"`
	Kind                 string                `json:"kind"`
	OrganizationID       uint64                `json:"organizationId"`
	CreatedByID          uint64                `json:"createdById"`
	TripID               uint64                `json:"tripId,omitempty"`
	OrderID              uint64                `json:"orderId,omitempty"`
	StatusType           entity.TripStatusType `json:"statusType,omitempty"`
	DriverReportID       *uint64               `json:"driverReportId,omitempty"`
	BillOfLading         string                `json:"billOfLading,omitempty"`
	BillOfLadingReceived bool                  `json:"billOfLadingReceived,omitempty"`
	Locale               string                `json:"locale,omitempty"`
	Token                string                `json:"token,omitempty"`
}

// NotificationData is the tagged union of push payload shapes, one variant
// per notification type, selected by an exhaustive switch on the trip status.
type NotificationData interface {
	NotificationType() entity.NotificationType
}

type TripPendingConfirmationData struct {
	DriverFullName string     `json:"driverFullName"`
	OrderCode      string     `json:"orderCode"`
	TripCode       string     `json:"tripCode"`
	VehicleNumber  string     `json:"vehicleNumber"`
	Weight         float64    `json:"weight"`
	UnitOfMeasure  string     `json:"unitOfMeasure"`
	PickupDate     *time.Time `json:"pickupDate,omitempty"`
}

func (TripPendingConfirmationData) NotificationType() entity.NotificationType {
	return entity.NotificationTripPendingConfirmation
}

type TripConfirmedData struct {
	DriverFullName string `json:"driverFullName"`
	OrderCode      string `json:"orderCode"`
	TripCode       string `json:"tripCode"`
	VehicleNumber  string `json:"vehicleNumber"`
}

func (TripConfirmedData) NotificationType() entity.NotificationType {
	return entity.NotificationTripConfirmed
}

type TripStatusChangedData struct {
	DriverFullName string  `json:"driverFullName"`
	OrderCode      string  `json:"orderCode"`
	TripCode       string  `json:"tripCode"`
	OrderGroupCode string  `json:"orderGroupCode,omitempty"`
	TripStatus     string  `json:"tripStatus"`
	DriverReportID *uint64 `json:"driverReportId,omitempty"`
	// DriverCost is pre-formatted currency text, present only when > 0.
	DriverCost string `json:"driverCost,omitempty"`
}

func (TripStatusChangedData) NotificationType() entity.NotificationType {
	return entity.NotificationTripStatusChanged
}

type BillOfLadingReceivedData struct {
	DriverFullName string `json:"driverFullName"`
	OrderCode      string `json:"orderCode"`
	TripCode       string `json:"tripCode"`
	BillOfLading   string `json:"billOfLading"`
}

func (BillOfLadingReceivedData) NotificationType() entity.NotificationType {
	return entity.NotificationBillOfLadingReceived
}

type OrderCompletedData struct {
	OrderCode        string  `json:"orderCode"`
	OrderGroupCode   string  `json:"orderGroupCode,omitempty"`
	Weight           float64 `json:"weight"`
	UnitOfMeasure    string  `json:"unitOfMeasure"`
	PickupPointLabel string  `json:"pickupPointLabel,omitempty"`
}

func (OrderCompletedData) NotificationType() entity.NotificationType {
	return entity.NotificationOrderStatusChanged
}

// NotificationEvent is the message published to the push channel.
type NotificationEvent struct {
	ID                   string             `json:"id"`
	Entity               NotificationEntity `json:"entity"`
	Data                 NotificationData   `json:"data"`
	Receivers            []uint64           `json:"receivers,omitempty"`
	OrgMemberRoles       []string           `json:"orgMemberRoles,omitempty"`
	IsSendToParticipants bool               `json:"isSendToParticipants"`
	Token                string             `json:"jwt,omitempty"`
}

type NotificationEntity struct {
	Type           entity.NotificationType `json:"type"`
	OrganizationID uint64                  `json:"organizationId"`
	CreatedByID    uint64                  `json:"createdById"`
	TargetID       uint64                  `json:"targetId"`
}

func (e *NotificationEvent) GetId() string {
	return e.ID
}
