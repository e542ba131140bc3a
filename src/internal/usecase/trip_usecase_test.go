package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	httpError "trip-service/src/pkg/http-error"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

type tripFixture struct {
	uc       *TripUseCase
	db       *fakeDB
	trips    *fakeTripStore
	statuses *fakeTripStatusStore
	messages *fakeTripMessageStore
	orders   *fakeOrderStore
	groups   *fakeOrderGroupStore
	reports  *fakeDriverReportStore
	uploader *fakeUploader
	tasks    *fakeEnqueuer
}

func newTripFixture() *tripFixture {
	orderDate := baseTime

	f := &tripFixture{
		db: &fakeDB{},
		trips: &fakeTripStore{
			trip: &entity.Trip{
				ID:             10,
				OrganizationID: 1,
				OrderID:        5,
				Code:           "TRP-001",
				DriverID:       7,
				UpdatedAt:      baseTime,
			},
			updatedAt: baseTime,
		},
		statuses: &fakeTripStatusStore{count: 2},
		messages: &fakeTripMessageStore{},
		orders: &fakeOrderStore{
			order: &entity.Order{
				ID:             5,
				OrganizationID: 1,
				Code:           "ORD-001",
				Weight:         24,
				UnitOfMeasure:  "TON",
				OrderDate:      &orderDate,
			},
		},
		groups:   &fakeOrderGroupStore{},
		reports:  &fakeDriverReportStore{report: &entity.DriverReportType{ID: 33, StatusType: "COMPLETED"}},
		uploader: &fakeUploader{},
		tasks:    &fakeEnqueuer{},
	}

	cfg := viper.New()
	cfg.Set("app.currency", "VND")

	// unreachable endpoint: every cache call errors fast and falls through
	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	f.uc = NewTripUseCase(
		newTestLogger(),
		validator.New(),
		f.db,
		f.trips,
		f.statuses,
		f.messages,
		f.orders,
		f.groups,
		f.reports,
		f.uploader,
		redisClient,
		f.tasks,
		cfg,
	)

	return f
}

func (f *tripFixture) editRequest(statusType entity.TripStatusType) *model.EditStatusRequest {
	ts := f.trips.updatedAt
	return &model.EditStatusRequest{
		OrganizationID: 1,
		CreatedByID:    2,
		TripCode:       "TRP-001",
		TripID:         10,
		Type:           statusType,
		LastUpdatedAt:  &ts,
	}
}

func (f *tripFixture) bolRequest() *model.BillOfLadingRequest {
	ts := f.trips.updatedAt
	return &model.BillOfLadingRequest{
		OrganizationID: 1,
		CreatedByID:    2,
		TripCode:       "TRP-001",
		TripID:         10,
		BillOfLading:   "BOL-7",
		Order: &model.OrderContext{
			Code:                    "ORD-001",
			TotalTripCount:          3,
			RemainingWeightCapacity: 12,
		},
		LastUpdatedAt: &ts,
	}
}

func enqueuedKinds(t *testing.T, f *fakeEnqueuer) []model.NotificationTask {
	t.Helper()
	tasks := make([]model.NotificationTask, 0, len(f.tasks))
	for _, raw := range f.tasks {
		require.Equal(t, model.TaskNotificationDispatch, raw.Type())
		var task model.NotificationTask
		require.NoError(t, json.Unmarshal(raw.Payload(), &task))
		tasks = append(tasks, task)
	}
	return tasks
}

func asCommonError(t *testing.T, err error) *httpError.CommonError {
	t.Helper()
	require.Error(t, err)
	commonErr, ok := err.(*httpError.CommonError)
	require.True(t, ok, "expected *httperror.CommonError, got %T", err)
	return commonErr
}

func TestEditStatusRecordsTransition(t *testing.T) {
	f := newTripFixture()

	result := f.uc.EditStatus(context.Background(), f.editRequest(entity.TripStatusWarehousePickedUp))
	require.NoError(t, result.Error)

	require.Len(t, f.statuses.created, 1)
	created := f.statuses.created[0]
	assert.Equal(t, entity.TripStatusWarehousePickedUp, created.Type)
	assert.Equal(t, 3, created.Seq)
	assert.Equal(t, uint64(2), created.CreatedByID)

	assert.Equal(t, []entity.TripStatusType{entity.TripStatusWarehousePickedUp}, f.trips.lastStatusUpdates)
	assert.Equal(t, 1, f.db.txCount)
	assert.Empty(t, f.messages.created, "no images and no geolocation: no message")

	tasks := enqueuedKinds(t, f.tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.KindTripStatus, tasks[0].Kind)
	assert.Equal(t, entity.TripStatusWarehousePickedUp, tasks[0].StatusType)
	assert.Equal(t, uint64(10), tasks[0].TripID)

	response, ok := result.Data.(model.EditStatusResponse)
	require.True(t, ok)
	assert.Equal(t, uint64(1), response.ID)
}

func TestEditStatusOrdinalsKeepIncreasing(t *testing.T) {
	f := newTripFixture()

	for i := 0; i < 3; i++ {
		result := f.uc.EditStatus(context.Background(), f.editRequest(entity.TripStatusWaitingForPickup))
		require.NoError(t, result.Error)
	}

	require.Len(t, f.statuses.created, 3)
	assert.Equal(t, 3, f.statuses.created[0].Seq)
	assert.Equal(t, 4, f.statuses.created[1].Seq)
	assert.Equal(t, 5, f.statuses.created[2].Seq)
}

func TestEditStatusStaleTimestampConflict(t *testing.T) {
	f := newTripFixture()

	request := f.editRequest(entity.TripStatusConfirmed)
	stale := baseTime.Add(-time.Minute)
	request.LastUpdatedAt = &stale

	result := f.uc.EditStatus(context.Background(), request)

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusConflict, commonErr.Code)
	assert.Equal(t, "EXCLUSIVE", commonErr.CodeName)

	assert.Zero(t, f.db.txCount, "conflict must reject before any write")
	assert.Empty(t, f.statuses.created)
	assert.Empty(t, f.tasks.tasks)
}

func TestEditStatusMissingTimestamp(t *testing.T) {
	f := newTripFixture()

	request := f.editRequest(entity.TripStatusConfirmed)
	request.LastUpdatedAt = nil

	result := f.uc.EditStatus(context.Background(), request)

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusBadRequest, commonErr.Code)
	assert.Equal(t, "BAD_REQUEST", commonErr.CodeName)
	assert.Zero(t, f.db.txCount)
}

func TestEditStatusSkipExclusiveCheck(t *testing.T) {
	f := newTripFixture()

	request := f.editRequest(entity.TripStatusConfirmed)
	request.LastUpdatedAt = nil
	request.SkipCheckExclusives = true

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)
	assert.Len(t, f.statuses.created, 1)
}

func TestEditStatusTripIDMismatch(t *testing.T) {
	f := newTripFixture()

	request := f.editRequest(entity.TripStatusConfirmed)
	request.TripID = 99

	result := f.uc.EditStatus(context.Background(), request)

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusBadRequest, commonErr.Code)
	assert.Zero(t, f.db.txCount)
}

func TestEditStatusTerminalRequiresDriverReport(t *testing.T) {
	for _, statusType := range []entity.TripStatusType{entity.TripStatusDelivered, entity.TripStatusCompleted} {
		t.Run(string(statusType), func(t *testing.T) {
			f := newTripFixture()

			result := f.uc.EditStatus(context.Background(), f.editRequest(statusType))

			commonErr := asCommonError(t, result.Error)
			assert.Equal(t, http.StatusBadRequest, commonErr.Code)
			assert.Zero(t, f.db.txCount)
		})
	}
}

func TestEditStatusMessageRequiresEvidence(t *testing.T) {
	lat, lng := 10.762622, 106.660172
	existingID := uint64(55)

	tests := []struct {
		name         string
		mutate       func(r *model.EditStatusRequest)
		wantMessages int
	}{
		{
			name:         "no evidence",
			mutate:       func(r *model.EditStatusRequest) {},
			wantMessages: 0,
		},
		{
			name: "full geolocation",
			mutate: func(r *model.EditStatusRequest) {
				r.Latitude, r.Longitude = &lat, &lng
			},
			wantMessages: 1,
		},
		{
			name: "latitude alone is not a fix",
			mutate: func(r *model.EditStatusRequest) {
				r.Latitude = &lat
			},
			wantMessages: 0,
		},
		{
			name: "new image",
			mutate: func(r *model.EditStatusRequest) {
				r.Attachments = []model.AttachmentItem{{Name: "pod.jpg", Data: []byte("img")}}
			},
			wantMessages: 1,
		},
		{
			name: "only pre-existing image ids",
			mutate: func(r *model.EditStatusRequest) {
				r.Attachments = []model.AttachmentItem{{ID: &existingID, Name: "pod.jpg"}}
			},
			wantMessages: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTripFixture()

			request := f.editRequest(entity.TripStatusWaitingForDelivery)
			tc.mutate(request)

			result := f.uc.EditStatus(context.Background(), request)
			require.NoError(t, result.Error)
			assert.Len(t, f.messages.created, tc.wantMessages)
		})
	}
}

func TestEditStatusMessageCarriesGeoAndFiles(t *testing.T) {
	f := newTripFixture()

	lat, lng := 10.762622, 106.660172
	request := f.editRequest(entity.TripStatusWaitingForDelivery)
	request.Latitude, request.Longitude = &lat, &lng
	request.Attachments = []model.AttachmentItem{{Name: "pod.jpg", Data: []byte("img")}}

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)

	require.Len(t, f.messages.created, 1)
	message := f.messages.created[0]
	require.NotNil(t, message.Latitude)
	assert.Equal(t, lat, *message.Latitude)
	require.NotNil(t, message.Longitude)
	assert.Equal(t, lng, *message.Longitude)

	var fileIDs []uint64
	require.NoError(t, json.Unmarshal(message.FileIDs, &fileIDs))
	assert.Equal(t, []uint64{100}, fileIDs)
}

func TestEditStatusPushSuppressed(t *testing.T) {
	f := newTripFixture()

	push := false
	request := f.editRequest(entity.TripStatusConfirmed)
	request.PushNotification = &push

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)

	assert.Len(t, f.statuses.created, 1, "transition still recorded")
	assert.Empty(t, f.tasks.tasks, "suppression means zero enqueued tasks")
}

func TestEditStatusTransactionFailure(t *testing.T) {
	f := newTripFixture()
	f.db.txErr = context.DeadlineExceeded

	result := f.uc.EditStatus(context.Background(), f.editRequest(entity.TripStatusConfirmed))

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusInternalServerError, commonErr.Code)
	assert.Equal(t, "UNKNOWN", commonErr.CodeName)

	assert.Empty(t, f.trips.lastStatusUpdates, "rolled back: nothing committed")
	assert.Empty(t, f.tasks.tasks, "no notification for an uncommitted transition")
}

func TestEditStatusUploadFailureAbortsBeforeTransaction(t *testing.T) {
	f := newTripFixture()
	f.uploader.err = context.DeadlineExceeded

	request := f.editRequest(entity.TripStatusWaitingForDelivery)
	request.Attachments = []model.AttachmentItem{{Name: "pod.jpg", Data: []byte("img")}}

	result := f.uc.EditStatus(context.Background(), request)

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusInternalServerError, commonErr.Code)
	assert.Equal(t, "UNKNOWN", commonErr.CodeName)

	assert.Zero(t, f.db.txCount, "failed upload must abort before the transaction opens")
	assert.Empty(t, f.statuses.created)
	assert.Empty(t, f.tasks.tasks)
}

func TestUpdateBillOfLadingTransactionFailure(t *testing.T) {
	f := newTripFixture()
	f.db.txErr = context.DeadlineExceeded

	result := f.uc.UpdateBillOfLading(context.Background(), f.bolRequest())

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusInternalServerError, commonErr.Code)
	assert.Equal(t, "UNKNOWN", commonErr.CodeName)

	assert.Zero(t, f.trips.bolUpdateCount, "rolled back: nothing committed")
	assert.Empty(t, f.tasks.tasks)
}

func TestEditStatusEnqueueFailureDoesNotFailRequest(t *testing.T) {
	f := newTripFixture()
	f.tasks.err = context.DeadlineExceeded

	result := f.uc.EditStatus(context.Background(), f.editRequest(entity.TripStatusConfirmed))
	require.NoError(t, result.Error)
	assert.Len(t, f.statuses.created, 1)
}

func TestEditStatusRollupCompletesOrder(t *testing.T) {
	f := newTripFixture()
	f.orders.terminalTripCount = 2

	reportID := uint64(12)
	request := f.editRequest(entity.TripStatusDelivered)
	request.DriverReportID = &reportID
	request.Order = &model.OrderContext{
		Code:                    "ORD-001",
		TotalTripCount:          2,
		RemainingWeightCapacity: 0,
	}

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)

	require.Len(t, f.orders.createdStatuses, 1)
	orderStatus := f.orders.createdStatuses[0]
	assert.Equal(t, entity.OrderStatusCompleted, orderStatus.Type)
	assert.Equal(t, entity.OrderStatusCompletedSeq, orderStatus.Seq)

	tasks := enqueuedKinds(t, f.tasks)
	kinds := make([]string, 0, len(tasks))
	for _, task := range tasks {
		kinds = append(kinds, task.Kind)
	}
	assert.ElementsMatch(t, []string{model.KindOrderCompleted, model.KindTripStatus}, kinds)
}

func TestEditStatusRollupIsIdempotent(t *testing.T) {
	f := newTripFixture()
	f.orders.terminalTripCount = 2
	f.orders.hasCompleted = true

	reportID := uint64(12)
	request := f.editRequest(entity.TripStatusDelivered)
	request.DriverReportID = &reportID
	request.Order = &model.OrderContext{
		Code:                    "ORD-001",
		TotalTripCount:          2,
		RemainingWeightCapacity: 0,
	}

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)

	assert.Empty(t, f.orders.createdStatuses, "COMPLETED entry must not duplicate")

	tasks := enqueuedKinds(t, f.tasks)
	require.Len(t, tasks, 1, "no completion event when nothing was inserted")
	assert.Equal(t, model.KindTripStatus, tasks[0].Kind)
}

func TestEditStatusRollupSkipsUnfinishedOrder(t *testing.T) {
	f := newTripFixture()
	f.orders.terminalTripCount = 1

	reportID := uint64(12)
	request := f.editRequest(entity.TripStatusDelivered)
	request.DriverReportID = &reportID
	request.Order = &model.OrderContext{
		Code:                    "ORD-001",
		TotalTripCount:          2,
		RemainingWeightCapacity: 5,
	}

	result := f.uc.EditStatus(context.Background(), request)
	require.NoError(t, result.Error)
	assert.Empty(t, f.orders.createdStatuses)
}

func TestEditStatusGroupRollup(t *testing.T) {
	groupID := uint64(9)

	tests := []struct {
		name          string
		consolidation bool
		allInStatus   bool
		wantGroupRows int
		wantGroupType entity.OrderGroupStatusType
	}{
		{"consolidation disabled", false, true, 0, ""},
		{"trips still in flight", true, false, 0, ""},
		{"all trips completed", true, true, 1, entity.OrderGroupStatusCompleted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTripFixture()
			f.orders.order.GroupID = &groupID
			f.groups.consolidation = tc.consolidation
			f.groups.allInStatus = tc.allInStatus

			reportID := uint64(12)
			request := f.editRequest(entity.TripStatusCompleted)
			request.DriverReportID = &reportID
			request.Order = &model.OrderContext{
				Code:                    "ORD-001",
				TotalTripCount:          3,
				RemainingWeightCapacity: 8,
			}

			result := f.uc.EditStatus(context.Background(), request)
			require.NoError(t, result.Error)

			require.Len(t, f.groups.createdStatuses, tc.wantGroupRows)
			if tc.wantGroupRows > 0 {
				assert.Equal(t, tc.wantGroupType, f.groups.createdStatuses[0].Type)
				assert.Equal(t, groupID, f.groups.createdStatuses[0].GroupID)
			}
		})
	}
}

func TestUpdateBillOfLadingDuplicateNumber(t *testing.T) {
	f := newTripFixture()
	f.trips.bolExists = true

	result := f.uc.UpdateBillOfLading(context.Background(), f.bolRequest())

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusBadRequest, commonErr.Code)
	assert.Equal(t, "EXISTED", commonErr.CodeName)

	assert.Zero(t, f.db.txCount)
	assert.Zero(t, f.trips.bolUpdateCount)
	assert.Empty(t, f.tasks.tasks)
}

func TestUpdateBillOfLadingMissingReportType(t *testing.T) {
	f := newTripFixture()
	f.reports.report = nil
	f.reports.err = context.DeadlineExceeded

	result := f.uc.UpdateBillOfLading(context.Background(), f.bolRequest())

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, http.StatusInternalServerError, commonErr.Code)
	assert.Equal(t, "UNKNOWN", commonErr.CodeName)
	assert.Zero(t, f.db.txCount, "reference data must resolve before the transaction opens")
}

func TestUpdateBillOfLadingCompletes(t *testing.T) {
	f := newTripFixture()

	notes := "left at gate"
	request := f.bolRequest()
	request.BillOfLadingReceived = true
	request.Notes = &notes
	request.Images = []model.AttachmentItem{
		{Name: "bol-front.jpg", Data: []byte("a")},
		{Name: "bol-back.jpg", Data: []byte("b")},
	}

	result := f.uc.UpdateBillOfLading(context.Background(), request)
	require.NoError(t, result.Error)

	assert.Equal(t, 1, f.trips.bolUpdateCount)
	assert.Equal(t, "BOL-7", f.trips.bolNumber)
	assert.True(t, f.trips.bolReceived)
	assert.Equal(t, []uint64{100, 101}, f.trips.bolImageIDs)

	require.Len(t, f.statuses.created, 1)
	status := f.statuses.created[0]
	assert.Equal(t, entity.TripStatusCompleted, status.Type)
	assert.Equal(t, 3, status.Seq)
	require.NotNil(t, status.DriverReportID)
	assert.Equal(t, uint64(33), *status.DriverReportID)

	require.Len(t, f.messages.created, 1)
	wantMessage := "Bill of lading number: BOL-7\n" +
		"Notes: left at gate\n" +
		"Bill of lading has been received\n" +
		"Attached 2 bill of lading image(s)"
	assert.Equal(t, wantMessage, f.messages.created[0].Message)

	tasks := enqueuedKinds(t, f.tasks)
	require.Len(t, tasks, 2)
	byKind := map[string]model.NotificationTask{}
	for _, task := range tasks {
		byKind[task.Kind] = task
	}
	require.Contains(t, byKind, model.KindTripStatus)
	assert.True(t, byKind[model.KindTripStatus].BillOfLadingReceived)
	require.Contains(t, byKind, model.KindBillOfLading)
	assert.Equal(t, "BOL-7", byKind[model.KindBillOfLading].BillOfLading)
}

func TestUpdateBillOfLadingNotReceived(t *testing.T) {
	f := newTripFixture()

	result := f.uc.UpdateBillOfLading(context.Background(), f.bolRequest())
	require.NoError(t, result.Error)

	require.Len(t, f.messages.created, 1)
	assert.Equal(t, "Bill of lading number: BOL-7", f.messages.created[0].Message)

	tasks := enqueuedKinds(t, f.tasks)
	require.Len(t, tasks, 1, "no received event when the document is still pending")
	assert.Equal(t, model.KindTripStatus, tasks[0].Kind)
	assert.False(t, tasks[0].BillOfLadingReceived)
}

func TestUpdateBillOfLadingStaleTimestampConflict(t *testing.T) {
	f := newTripFixture()

	request := f.bolRequest()
	stale := baseTime.Add(-time.Hour)
	request.LastUpdatedAt = &stale

	result := f.uc.UpdateBillOfLading(context.Background(), request)

	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, "EXCLUSIVE", commonErr.CodeName)
	assert.Zero(t, f.trips.bolUpdateCount)
}

func TestGetTrip(t *testing.T) {
	f := newTripFixture()
	f.statuses.history = []entity.TripStatus{
		{ID: 1, Type: entity.TripStatusPendingConfirmation, Seq: 1},
		{ID: 2, Type: entity.TripStatusConfirmed, Seq: 2},
	}

	result := f.uc.GetTrip(context.Background(), &model.GetTripRequest{
		OrganizationID: 1,
		TripCode:       "TRP-001",
	})
	require.NoError(t, result.Error)

	response, ok := result.Data.(*model.TripResponse)
	require.True(t, ok)
	assert.Equal(t, "TRP-001", response.Code)
	require.Len(t, response.Statuses, 2)
	assert.Equal(t, 2, response.Statuses[1].Seq)
}
