package repository

import (
	"context"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

// Store interfaces consumed by the usecases. Transactional methods take an
// Executor so they run inside the caller's transaction.

type TripStore interface {
	FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Trip, error)
	FindByID(ctx context.Context, orgID, tripID uint64) (*entity.Trip, error)
	FindUpdatedAt(ctx context.Context, orgID, tripID uint64) (time.Time, error)
	BillOfLadingExists(ctx context.Context, orgID uint64, number string, excludeTripID uint64) (bool, error)
	UpdateLastStatus(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, statusType entity.TripStatusType) error
	UpdateBillOfLading(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, number string, received bool, imageIDs []uint64) error
}

type TripStatusStore interface {
	CountByTrip(ctx context.Context, tx mysql.Executor, orgID, tripID uint64) (int, error)
	Create(ctx context.Context, tx mysql.Executor, status *entity.TripStatus) (uint64, error)
	History(ctx context.Context, orgID, tripID uint64) ([]entity.TripStatus, error)
}

type TripMessageStore interface {
	Create(ctx context.Context, tx mysql.Executor, message *entity.TripMessage) (uint64, error)
}

type OrderStore interface {
	FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Order, error)
	FindByID(ctx context.Context, orgID, orderID uint64) (*entity.Order, error)
	CountTripsInStatus(ctx context.Context, orgID uint64, orderCode string, statuses []entity.TripStatusType) (int, error)
	HasStatus(ctx context.Context, tx mysql.Executor, orgID, orderID uint64, statusType entity.OrderStatusType) (bool, error)
	CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderStatus) (uint64, error)
	PickupPointLabel(ctx context.Context, orgID, orderID uint64) (string, error)
}

type OrderGroupStore interface {
	ConsolidationEnabled(ctx context.Context, orgID uint64) (bool, error)
	AllGroupTripsInStatus(ctx context.Context, orgID, groupID uint64, statuses []entity.TripStatusType) (bool, error)
	HasStatus(ctx context.Context, tx mysql.Executor, orgID, groupID uint64, statusType entity.OrderGroupStatusType) (bool, error)
	CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderGroupStatus) (uint64, error)
}

type DriverReportStore interface {
	FindByStatusType(ctx context.Context, orgID uint64, statusType string) (*entity.DriverReportType, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *entity.Notification, recipientUserIDs []uint64) (uint64, error)
}

type UploadFileStore interface {
	CreateFile(ctx context.Context, file *entity.UploadFile) (uint64, error)
}

type UserStore interface {
	FindByID(ctx context.Context, orgID, userID uint64) (*entity.User, error)
}
