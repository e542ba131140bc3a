package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/internal/model/converter"
	"trip-service/src/internal/repository"
	httpError "trip-service/src/pkg/http-error"
	"trip-service/src/pkg/databases/mysql"
	"trip-service/src/pkg/i18n"
	"trip-service/src/pkg/log"
	"trip-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// AttachmentIngestor uploads pending attachment payloads and yields durable
// upload-file ids; items already carrying an id pass through.
type AttachmentIngestor interface {
	IngestAttachments(ctx context.Context, orgID uint64, orderCode, tripCode string, orderDate time.Time, items []model.AttachmentItem) ([]uint64, error)
}

// TaskEnqueuer is the asynq client surface used for post-commit dispatch.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type TripUseCase struct {
	Log                    log.Log
	Validate               *validator.Validate
	DB                     mysql.DBInterface
	TripRepository         repository.TripStore
	TripStatusRepository   repository.TripStatusStore
	TripMessageRepository  repository.TripMessageStore
	OrderRepository        repository.OrderStore
	OrderGroupRepository   repository.OrderGroupStore
	DriverReportRepository repository.DriverReportStore
	Uploader               AttachmentIngestor
	Redis                  redis.UniversalClient
	Tasks                  TaskEnqueuer
	Config                 *viper.Viper
}

func NewTripUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	tripRepository repository.TripStore,
	tripStatusRepository repository.TripStatusStore,
	tripMessageRepository repository.TripMessageStore,
	orderRepository repository.OrderStore,
	orderGroupRepository repository.OrderGroupStore,
	driverReportRepository repository.DriverReportStore,
	uploader AttachmentIngestor,
	redisClient redis.UniversalClient,
	tasks TaskEnqueuer,
	cfg *viper.Viper,
) *TripUseCase {
	return &TripUseCase{
		Log:                    logger,
		Validate:               validate,
		DB:                     db,
		TripRepository:         tripRepository,
		TripStatusRepository:   tripStatusRepository,
		TripMessageRepository:  tripMessageRepository,
		OrderRepository:        orderRepository,
		OrderGroupRepository:   orderGroupRepository,
		DriverReportRepository: driverReportRepository,
		Uploader:               uploader,
		Redis:                  redisClient,
		Tasks:                  tasks,
		Config:                 cfg,
	}
}

// EditStatus appends a status transition to a trip. Guards (exclusivity,
// required driver report) run before anything mutates; the status entry, trip
// update and optional message commit in one transaction; rollup and
// notifications run strictly after commit and never fail the request.
func (c *TripUseCase) EditStatus(ctx context.Context, request *model.EditStatusRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "EditStatus", utils.ConvertString(request))
		return result
	}

	trip, err := c.TripRepository.FindByCode(ctx, request.OrganizationID, request.TripCode)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("trip with code %s not found", request.TripCode)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "EditStatus", utils.ConvertString(err))
		return result
	}
	if trip.ID != request.TripID {
		errObj := httpError.NewBadRequest()
		errObj.Message = "trip id does not match trip code"
		result.Error = errObj
		return result
	}

	if conflictErr := c.checkExclusive(ctx, request.OrganizationID, trip.ID, request.LastUpdatedAt, request.SkipCheckExclusives); conflictErr != nil {
		result.Error = conflictErr
		c.Log.Error("trip-usecase", conflictErr.Error(), "EditStatus", fmt.Sprintf("tripId=%d", trip.ID))
		return result
	}

	// driver-submitted terminal reports must reference their report record
	if (request.Type == entity.TripStatusDelivered || request.Type == entity.TripStatusCompleted) && request.DriverReportID == nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "driverReportId is required for this status"
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "EditStatus", string(request.Type))
		return result
	}

	order, err := c.OrderRepository.FindByID(ctx, request.OrganizationID, trip.OrderID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load order %d: %v", trip.OrderID, err)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "EditStatus", "")
		return result
	}

	imageIDs, hasNewImages, errObj := c.ingestAttachments(ctx, request.OrganizationID, order, trip, request.Attachments)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	var statusID uint64
	txErr := c.DB.WithTransaction(ctx, func(tx mysql.Executor) error {
		count, err := c.TripStatusRepository.CountByTrip(ctx, tx, request.OrganizationID, trip.ID)
		if err != nil {
			return err
		}

		statusID, err = c.TripStatusRepository.Create(ctx, tx, &entity.TripStatus{
			OrganizationID: request.OrganizationID,
			TripID:         trip.ID,
			Type:           request.Type,
			Seq:            count + 1,
			Notes:          request.Notes,
			DriverReportID: request.DriverReportID,
			CreatedByID:    request.CreatedByID,
		})
		if err != nil {
			return err
		}

		if err = c.TripRepository.UpdateLastStatus(ctx, tx, request.OrganizationID, trip.ID, request.Type); err != nil {
			return err
		}

		// a message row is only worth recording when the transition carries
		// evidence: fresh images or a full geolocation fix
		hasGeo := request.Latitude != nil && request.Longitude != nil
		if hasNewImages || hasGeo {
			msgType := string(request.Type)
			var fileIDs []byte
			if len(imageIDs) > 0 {
				fileIDs, err = json.Marshal(imageIDs)
				if err != nil {
					return err
				}
			}

			var body string
			if request.Notes != nil {
				body = *request.Notes
			}

			_, err = c.TripMessageRepository.Create(ctx, tx, &entity.TripMessage{
				OrganizationID: request.OrganizationID,
				TripID:         trip.ID,
				Type:           &msgType,
				Message:        body,
				Latitude:       request.Latitude,
				Longitude:      request.Longitude,
				FileIDs:        fileIDs,
				CreatedByID:    request.CreatedByID,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to record status transition: %v", txErr)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "EditStatus", fmt.Sprintf("tripId=%d", trip.ID))
		return result
	}

	push := request.PushNotification == nil || *request.PushNotification

	if request.Order != nil {
		c.applyOrderRollup(ctx, request.OrganizationID, request.CreatedByID, request.Order, order, request.Type, push, request.Locale, request.Token)
	}

	if push {
		c.enqueueNotification(ctx, model.NotificationTask{
			ID:             uuid.NewString(),
			Kind:           model.KindTripStatus,
			OrganizationID: request.OrganizationID,
			CreatedByID:    request.CreatedByID,
			TripID:         trip.ID,
			StatusType:     request.Type,
			DriverReportID: request.DriverReportID,
			Locale:         request.Locale,
			Token:          request.Token,
		})
	}

	c.Log.Info("trip-usecase", "status transition recorded", "EditStatus",
		fmt.Sprintf("tripId=%d status=%s statusId=%d", trip.ID, request.Type, statusID))
	result.Data = model.EditStatusResponse{ID: statusID}
	return result
}

// UpdateBillOfLading is the distinguished COMPLETED transition: it checks the
// bill-of-lading number is unused in the organization, requires the COMPLETED
// driver-report type to resolve, then atomically updates the trip's
// bill-of-lading fields, appends the COMPLETED status and the composed
// message.
func (c *TripUseCase) UpdateBillOfLading(ctx context.Context, request *model.BillOfLadingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", utils.ConvertString(request))
		return result
	}

	trip, err := c.TripRepository.FindByCode(ctx, request.OrganizationID, request.TripCode)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("trip with code %s not found", request.TripCode)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", utils.ConvertString(err))
		return result
	}
	if trip.ID != request.TripID {
		errObj := httpError.NewBadRequest()
		errObj.Message = "trip id does not match trip code"
		result.Error = errObj
		return result
	}

	if conflictErr := c.checkExclusive(ctx, request.OrganizationID, trip.ID, request.LastUpdatedAt, request.SkipCheckExclusives); conflictErr != nil {
		result.Error = conflictErr
		c.Log.Error("trip-usecase", conflictErr.Error(), "UpdateBillOfLading", fmt.Sprintf("tripId=%d", trip.ID))
		return result
	}

	exists, err := c.TripRepository.BillOfLadingExists(ctx, request.OrganizationID, request.BillOfLading, trip.ID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to check bill of lading uniqueness: %v", err)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", "")
		return result
	}
	if exists {
		errObj := httpError.NewExisted()
		errObj.Message = fmt.Sprintf("bill of lading number %s is already used by another trip", request.BillOfLading)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", fmt.Sprintf("tripId=%d", trip.ID))
		return result
	}

	report, errObj := c.resolveDriverReport(ctx, request.OrganizationID, string(entity.TripStatusCompleted))
	if errObj != nil {
		result.Error = errObj
		return result
	}

	order, err := c.OrderRepository.FindByID(ctx, request.OrganizationID, trip.OrderID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load order %d: %v", trip.OrderID, err)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", "")
		return result
	}

	imageIDs, _, errObj := c.ingestAttachments(ctx, request.OrganizationID, order, trip, request.Images)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	message := c.composeBillOfLadingMessage(request, imageIDs)

	txErr := c.DB.WithTransaction(ctx, func(tx mysql.Executor) error {
		if err := c.TripRepository.UpdateBillOfLading(ctx, tx, request.OrganizationID, trip.ID,
			request.BillOfLading, request.BillOfLadingReceived, imageIDs); err != nil {
			return err
		}

		count, err := c.TripStatusRepository.CountByTrip(ctx, tx, request.OrganizationID, trip.ID)
		if err != nil {
			return err
		}

		reportID := report.ID
		_, err = c.TripStatusRepository.Create(ctx, tx, &entity.TripStatus{
			OrganizationID: request.OrganizationID,
			TripID:         trip.ID,
			Type:           entity.TripStatusCompleted,
			Seq:            count + 1,
			Notes:          request.Notes,
			DriverReportID: &reportID,
			CreatedByID:    request.CreatedByID,
		})
		if err != nil {
			return err
		}

		var fileIDs []byte
		if len(imageIDs) > 0 {
			fileIDs, err = json.Marshal(imageIDs)
			if err != nil {
				return err
			}
		}

		msgType := string(entity.TripStatusCompleted)
		_, err = c.TripMessageRepository.Create(ctx, tx, &entity.TripMessage{
			OrganizationID: request.OrganizationID,
			TripID:         trip.ID,
			Type:           &msgType,
			Message:        message,
			FileIDs:        fileIDs,
			CreatedByID:    request.CreatedByID,
		})
		return err
	})
	if txErr != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to complete bill of lading: %v", txErr)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "UpdateBillOfLading", fmt.Sprintf("tripId=%d", trip.ID))
		return result
	}

	push := request.PushNotification == nil || *request.PushNotification

	c.applyOrderRollup(ctx, request.OrganizationID, request.CreatedByID, request.Order, order, entity.TripStatusCompleted, push, request.Locale, request.Token)

	if push {
		reportID := report.ID
		c.enqueueNotification(ctx, model.NotificationTask{
			ID:                   uuid.NewString(),
			Kind:                 model.KindTripStatus,
			OrganizationID:       request.OrganizationID,
			CreatedByID:          request.CreatedByID,
			TripID:               trip.ID,
			StatusType:           entity.TripStatusCompleted,
			DriverReportID:       &reportID,
			BillOfLadingReceived: request.BillOfLadingReceived,
			Locale:               request.Locale,
			Token:                request.Token,
		})

		if request.BillOfLadingReceived {
			c.enqueueNotification(ctx, model.NotificationTask{
				ID:             uuid.NewString(),
				Kind:           model.KindBillOfLading,
				OrganizationID: request.OrganizationID,
				CreatedByID:    request.CreatedByID,
				TripID:         trip.ID,
				BillOfLading:   request.BillOfLading,
				Locale:         request.Locale,
				Token:          request.Token,
			})
		}
	}

	c.Log.Info("trip-usecase", "bill of lading completed", "UpdateBillOfLading",
		fmt.Sprintf("tripId=%d bol=%s", trip.ID, request.BillOfLading))
	result.Data = model.BillOfLadingResponse{ID: trip.ID}
	return result
}

func (c *TripUseCase) GetTrip(ctx context.Context, request *model.GetTripRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	trip, err := c.TripRepository.FindByCode(ctx, request.OrganizationID, request.TripCode)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("trip with code %s not found", request.TripCode)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "GetTrip", utils.ConvertString(err))
		return result
	}

	statuses, err := c.TripStatusRepository.History(ctx, request.OrganizationID, trip.ID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load status history: %v", err)
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "GetTrip", "")
		return result
	}

	result.Data = converter.TripToResponse(trip, statuses)
	return result
}

// checkExclusive rejects the write when the trip changed since the client
// last read it. Bypass is opt-in per request, never default.
func (c *TripUseCase) checkExclusive(ctx context.Context, orgID, tripID uint64, clientLastUpdatedAt *time.Time, skip bool) error {
	if skip {
		return nil
	}

	if clientLastUpdatedAt == nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "lastUpdatedAt is required unless the exclusivity check is skipped"
		return errObj
	}

	updatedAt, err := c.TripRepository.FindUpdatedAt(ctx, orgID, tripID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load trip timestamp: %v", err)
		return errObj
	}

	if !updatedAt.Equal(*clientLastUpdatedAt) {
		return httpError.NewExclusive()
	}

	return nil
}

func (c *TripUseCase) ingestAttachments(ctx context.Context, orgID uint64, order *entity.Order, trip *entity.Trip, items []model.AttachmentItem) ([]uint64, bool, *httpError.CommonError) {
	if len(items) == 0 {
		return nil, false, nil
	}

	hasNew := false
	for _, item := range items {
		if item.ID == nil {
			hasNew = true
			break
		}
	}

	bucketDate := time.Now()
	if order.OrderDate != nil {
		bucketDate = *order.OrderDate
	}

	ids, err := c.Uploader.IngestAttachments(ctx, orgID, order.Code, trip.Code, bucketDate, items)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("attachment upload failed: %v", err)
		c.Log.Error("trip-usecase", errObj.Message, "ingestAttachments", fmt.Sprintf("tripId=%d", trip.ID))
		return nil, false, errObj
	}

	return ids, hasNew, nil
}

// resolveDriverReport loads the org's driver-report type for a workflow
// status, through a short-lived redis cache. Missing reference data is an
// internal error: the transaction must never open without it.
func (c *TripUseCase) resolveDriverReport(ctx context.Context, orgID uint64, statusType string) (*entity.DriverReportType, *httpError.CommonError) {
	key := fmt.Sprintf("DRIVER-REPORT:%d:%s", orgID, statusType)

	if cached, err := c.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
		var report entity.DriverReportType
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	report, err := c.DriverReportRepository.FindByStatusType(ctx, orgID, statusType)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("driver report type %s is not configured for this organization", statusType)
		c.Log.Error("trip-usecase", errObj.Message, "resolveDriverReport", utils.ConvertString(err))
		return nil, errObj
	}

	if data, err := json.Marshal(report); err == nil {
		if redisErr := c.Redis.Set(ctx, key, data, 10*time.Minute).Err(); redisErr != nil {
			c.Log.Warn("trip-usecase", fmt.Sprintf("failed to cache driver report type: %v", redisErr), "resolveDriverReport", key)
		}
	}

	return report, nil
}

func (c *TripUseCase) composeBillOfLadingMessage(request *model.BillOfLadingRequest, imageIDs []uint64) string {
	t := i18n.NewTranslator(request.Locale)

	lines := []string{t("bill_of_lading.message.number", request.BillOfLading)}
	if request.Notes != nil && *request.Notes != "" {
		lines = append(lines, t("bill_of_lading.message.notes", *request.Notes))
	}
	if request.BillOfLadingReceived {
		lines = append(lines, t("bill_of_lading.message.received"))
	}
	if len(imageIDs) > 0 {
		lines = append(lines, t("bill_of_lading.message.images", len(imageIDs)))
	}

	return strings.Join(lines, "\n")
}

func (c *TripUseCase) enqueueNotification(ctx context.Context, task model.NotificationTask) {
	payload, err := json.Marshal(task)
	if err != nil {
		c.Log.Error("trip-usecase", fmt.Sprintf("failed to marshal notification task: %v", err), "enqueueNotification", "")
		return
	}

	if _, err = c.Tasks.EnqueueContext(ctx, asynq.NewTask(model.TaskNotificationDispatch, payload)); err != nil {
		// best effort: the committed transition must not appear failed
		c.Log.Warn("trip-usecase", fmt.Sprintf("failed to enqueue notification task: %v", err), "enqueueNotification", task.Kind)
	}
}
