package usecase

import (
	"context"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/pkg/databases/mysql"
	"trip-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func newTestLogger() log.Log {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return log.Log{AppName: "trip-service-test", LogLevel: 0, Logger: l}
}

// fakeDB runs the transaction body directly; the stores under test track
// their own writes.
type fakeDB struct {
	txCount int
	txErr   error
}

func (f *fakeDB) GetDB() (*sqlx.DB, error) { return nil, nil }

func (f *fakeDB) WithTransaction(ctx context.Context, fn func(tx mysql.Executor) error) error {
	f.txCount++
	if f.txErr != nil {
		return f.txErr
	}
	return fn(nil)
}

type fakeTripStore struct {
	trip      *entity.Trip
	findErr   error
	updatedAt time.Time
	bolExists bool

	lastStatusUpdates []entity.TripStatusType
	bolNumber         string
	bolReceived       bool
	bolImageIDs       []uint64
	bolUpdateCount    int
}

func (f *fakeTripStore) FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Trip, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.trip, nil
}

func (f *fakeTripStore) FindByID(ctx context.Context, orgID, tripID uint64) (*entity.Trip, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.trip, nil
}

func (f *fakeTripStore) FindUpdatedAt(ctx context.Context, orgID, tripID uint64) (time.Time, error) {
	return f.updatedAt, nil
}

func (f *fakeTripStore) BillOfLadingExists(ctx context.Context, orgID uint64, number string, excludeTripID uint64) (bool, error) {
	return f.bolExists, nil
}

func (f *fakeTripStore) UpdateLastStatus(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, statusType entity.TripStatusType) error {
	f.lastStatusUpdates = append(f.lastStatusUpdates, statusType)
	return nil
}

func (f *fakeTripStore) UpdateBillOfLading(ctx context.Context, tx mysql.Executor, orgID, tripID uint64, number string, received bool, imageIDs []uint64) error {
	f.bolUpdateCount++
	f.bolNumber = number
	f.bolReceived = received
	f.bolImageIDs = imageIDs
	return nil
}

type fakeTripStatusStore struct {
	count   int
	nextID  uint64
	created []*entity.TripStatus
	history []entity.TripStatus
}

func (f *fakeTripStatusStore) CountByTrip(ctx context.Context, tx mysql.Executor, orgID, tripID uint64) (int, error) {
	return f.count + len(f.created), nil
}

func (f *fakeTripStatusStore) Create(ctx context.Context, tx mysql.Executor, status *entity.TripStatus) (uint64, error) {
	f.nextID++
	f.created = append(f.created, status)
	return f.nextID, nil
}

func (f *fakeTripStatusStore) History(ctx context.Context, orgID, tripID uint64) ([]entity.TripStatus, error) {
	return f.history, nil
}

type fakeTripMessageStore struct {
	created []*entity.TripMessage
}

func (f *fakeTripMessageStore) Create(ctx context.Context, tx mysql.Executor, message *entity.TripMessage) (uint64, error) {
	f.created = append(f.created, message)
	return uint64(len(f.created)), nil
}

type fakeOrderStore struct {
	order             *entity.Order
	findErr           error
	terminalTripCount int
	hasCompleted      bool
	createdStatuses   []*entity.OrderStatus
	pickupLabel       string
}

func (f *fakeOrderStore) FindByCode(ctx context.Context, orgID uint64, code string) (*entity.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.order, nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, orgID, orderID uint64) (*entity.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.order, nil
}

func (f *fakeOrderStore) CountTripsInStatus(ctx context.Context, orgID uint64, orderCode string, statuses []entity.TripStatusType) (int, error) {
	return f.terminalTripCount, nil
}

func (f *fakeOrderStore) HasStatus(ctx context.Context, tx mysql.Executor, orgID, orderID uint64, statusType entity.OrderStatusType) (bool, error) {
	return f.hasCompleted || len(f.createdStatuses) > 0, nil
}

func (f *fakeOrderStore) CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderStatus) (uint64, error) {
	f.createdStatuses = append(f.createdStatuses, status)
	return uint64(len(f.createdStatuses)), nil
}

func (f *fakeOrderStore) PickupPointLabel(ctx context.Context, orgID, orderID uint64) (string, error) {
	return f.pickupLabel, nil
}

type fakeOrderGroupStore struct {
	consolidation   bool
	allInStatus     bool
	hasStatus       bool
	createdStatuses []*entity.OrderGroupStatus
}

func (f *fakeOrderGroupStore) ConsolidationEnabled(ctx context.Context, orgID uint64) (bool, error) {
	return f.consolidation, nil
}

func (f *fakeOrderGroupStore) AllGroupTripsInStatus(ctx context.Context, orgID, groupID uint64, statuses []entity.TripStatusType) (bool, error) {
	return f.allInStatus, nil
}

func (f *fakeOrderGroupStore) HasStatus(ctx context.Context, tx mysql.Executor, orgID, groupID uint64, statusType entity.OrderGroupStatusType) (bool, error) {
	return f.hasStatus || len(f.createdStatuses) > 0, nil
}

func (f *fakeOrderGroupStore) CreateStatus(ctx context.Context, tx mysql.Executor, status *entity.OrderGroupStatus) (uint64, error) {
	f.createdStatuses = append(f.createdStatuses, status)
	return uint64(len(f.createdStatuses)), nil
}

type fakeDriverReportStore struct {
	report *entity.DriverReportType
	err    error
}

func (f *fakeDriverReportStore) FindByStatusType(ctx context.Context, orgID uint64, statusType string) (*entity.DriverReportType, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeUploader struct {
	ids   []uint64
	err   error
	calls int
	items []model.AttachmentItem
}

func (f *fakeUploader) IngestAttachments(ctx context.Context, orgID uint64, orderCode, tripCode string, orderDate time.Time, items []model.AttachmentItem) ([]uint64, error) {
	f.calls++
	f.items = items
	if f.err != nil {
		return nil, f.err
	}
	if f.ids != nil {
		return f.ids, nil
	}
	ids := make([]uint64, 0, len(items))
	for i, item := range items {
		if item.ID != nil {
			ids = append(ids, *item.ID)
			continue
		}
		ids = append(ids, uint64(100+i))
	}
	return ids, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "test"}, nil
}

type fakeUserStore struct {
	user *entity.User
	err  error
}

func (f *fakeUserStore) FindByID(ctx context.Context, orgID, userID uint64) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeNotificationStore struct {
	notifications []*entity.Notification
	recipients    [][]uint64
	err           error
}

func (f *fakeNotificationStore) Create(ctx context.Context, notification *entity.Notification, recipientUserIDs []uint64) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.notifications = append(f.notifications, notification)
	f.recipients = append(f.recipients, recipientUserIDs)
	return uint64(len(f.notifications)), nil
}

type fakePushSender struct {
	events []*model.NotificationEvent
	err    error
}

func (f *fakePushSender) SendPush(event *model.NotificationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
