package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/internal/model/converter"
	"trip-service/src/internal/repository"
	"trip-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

// PushSender publishes a finished payload to the push channel.
type PushSender interface {
	SendPush(event *model.NotificationEvent) error
}

// NotificationUseCase consumes post-commit dispatch tasks: it enriches the
// payload from storage, selects the variant for the status, persists the
// notification with its recipients and fires the push event.
type NotificationUseCase struct {
	Log                    log.Log
	TripRepository         repository.TripStore
	OrderRepository        repository.OrderStore
	UserRepository         repository.UserStore
	NotificationRepository repository.NotificationStore
	Producer               PushSender
	Config                 *viper.Viper
}

func NewNotificationUseCase(
	logger log.Log,
	tripRepository repository.TripStore,
	orderRepository repository.OrderStore,
	userRepository repository.UserStore,
	notificationRepository repository.NotificationStore,
	producer PushSender,
	cfg *viper.Viper,
) *NotificationUseCase {
	return &NotificationUseCase{
		Log:                    logger,
		TripRepository:         tripRepository,
		OrderRepository:        orderRepository,
		UserRepository:         userRepository,
		NotificationRepository: notificationRepository,
		Producer:               producer,
		Config:                 cfg,
	}
}

func (c *NotificationUseCase) HandleDispatchTask(ctx context.Context, t *asynq.Task) error {
	var task model.NotificationTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("malformed task payload: %v", err), "HandleDispatchTask", "")
		return nil // not retryable
	}

	switch task.Kind {
	case model.KindTripStatus:
		return c.dispatchTripStatus(ctx, &task)
	case model.KindBillOfLading:
		return c.dispatchBillOfLading(ctx, &task)
	case model.KindOrderCompleted:
		return c.dispatchOrderCompleted(ctx, &task)
	default:
		c.Log.Error("notification-usecase", fmt.Sprintf("unknown task kind %q", task.Kind), "HandleDispatchTask", task.ID)
		return nil
	}
}

func (c *NotificationUseCase) dispatchTripStatus(ctx context.Context, task *model.NotificationTask) error {
	enrichment, err := c.enrichTrip(ctx, task)
	if err != nil {
		return err
	}

	data, receivers, roles, toParticipants := c.routeForStatus(task.StatusType, task.BillOfLadingReceived, enrichment)
	if data == nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("no payload mapping for status %s", task.StatusType), "dispatchTripStatus", task.ID)
		return nil
	}

	return c.publish(ctx, task, data, enrichment.Trip.ID, receivers, roles, toParticipants)
}

func (c *NotificationUseCase) dispatchBillOfLading(ctx context.Context, task *model.NotificationTask) error {
	enrichment, err := c.enrichTrip(ctx, task)
	if err != nil {
		return err
	}
	enrichment.BillOfLading = task.BillOfLading

	data := converter.NewBillOfLadingReceivedData(*enrichment)
	roles := []string{entity.RoleManager, entity.RoleAccountant}

	return c.publish(ctx, task, data, enrichment.Trip.ID, nil, roles, false)
}

func (c *NotificationUseCase) dispatchOrderCompleted(ctx context.Context, task *model.NotificationTask) error {
	order, err := c.OrderRepository.FindByID(ctx, task.OrganizationID, task.OrderID)
	if err != nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("failed to load order %d: %v", task.OrderID, err), "dispatchOrderCompleted", task.ID)
		return err
	}

	pickupLabel, err := c.OrderRepository.PickupPointLabel(ctx, task.OrganizationID, order.ID)
	if err != nil {
		c.Log.Warn("notification-usecase", fmt.Sprintf("failed to resolve pickup point: %v", err), "dispatchOrderCompleted", task.ID)
	}

	data := converter.NewOrderCompletedData(converter.NotificationEnrichment{
		Order:            order,
		PickupPointLabel: pickupLabel,
	})
	roles := []string{entity.RoleManager, entity.RoleAccountant}

	return c.publish(ctx, task, data, order.ID, nil, roles, false)
}

// routeForStatus maps a trip status to its payload variant, direct receivers,
// role broadcast set and participant flag. Exhaustive over the status enum.
func (c *NotificationUseCase) routeForStatus(statusType entity.TripStatusType, bolReceived bool, e *converter.NotificationEnrichment) (model.NotificationData, []uint64, []string, bool) {
	driver := []uint64{e.Trip.DriverID}

	switch statusType {
	case entity.TripStatusPendingConfirmation:
		return converter.NewTripPendingConfirmationData(*e), driver, nil, false

	case entity.TripStatusConfirmed:
		return converter.NewTripConfirmedData(*e), driver, nil, true

	case entity.TripStatusWaitingForPickup,
		entity.TripStatusWarehouseGoingToPickup,
		entity.TripStatusWarehousePickedUp:
		return converter.NewTripStatusChangedData(*e, statusType), driver, nil, true

	case entity.TripStatusWaitingForDelivery,
		entity.TripStatusDelivered:
		return converter.NewTripStatusChangedData(*e, statusType), driver, []string{entity.RoleAccountant}, true

	case entity.TripStatusCompleted:
		roles := []string{entity.RoleAccountant}
		if bolReceived {
			roles = append(roles, entity.RoleManager)
		}
		return converter.NewTripStatusChangedData(*e, statusType), driver, roles, true

	case entity.TripStatusCanceled:
		return converter.NewTripStatusChangedData(*e, statusType), driver, nil, true
	}

	return nil, nil, nil, false
}

func (c *NotificationUseCase) enrichTrip(ctx context.Context, task *model.NotificationTask) (*converter.NotificationEnrichment, error) {
	trip, err := c.TripRepository.FindByID(ctx, task.OrganizationID, task.TripID)
	if err != nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("failed to load trip %d: %v", task.TripID, err), "enrichTrip", task.ID)
		return nil, err
	}

	order, err := c.OrderRepository.FindByID(ctx, task.OrganizationID, trip.OrderID)
	if err != nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("failed to load order %d: %v", trip.OrderID, err), "enrichTrip", task.ID)
		return nil, err
	}

	driverName := trip.DriverFullName
	if driver, err := c.UserRepository.FindByID(ctx, task.OrganizationID, trip.DriverID); err == nil {
		driverName = driver.FullName
	}

	return &converter.NotificationEnrichment{
		Trip:           trip,
		Order:          order,
		DriverFullName: driverName,
		DriverReportID: task.DriverReportID,
		Currency:       c.Config.GetString("app.currency"),
	}, nil
}

// publish persists the notification row with its recipients, then fires the
// push event. A failed push is logged only: the rows are already durable and
// retrying the task would duplicate them.
func (c *NotificationUseCase) publish(ctx context.Context, task *model.NotificationTask, data model.NotificationData, targetID uint64, receivers []uint64, roles []string, toParticipants bool) error {
	meta, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.NotificationRepository.Create(ctx, &entity.Notification{
		OrganizationID: task.OrganizationID,
		Type:           data.NotificationType(),
		TargetID:       targetID,
		Meta:           meta,
		CreatedByID:    task.CreatedByID,
	}, receivers)
	if err != nil {
		c.Log.Error("notification-usecase", fmt.Sprintf("failed to persist notification: %v", err), "publish", task.ID)
		return err
	}

	event := &model.NotificationEvent{
		ID: task.ID,
		Entity: model.NotificationEntity{
			Type:           data.NotificationType(),
			OrganizationID: task.OrganizationID,
			CreatedByID:    task.CreatedByID,
			TargetID:       targetID,
		},
		Data:                 data,
		Receivers:            receivers,
		OrgMemberRoles:       roles,
		IsSendToParticipants: toParticipants,
		Token:                task.Token,
	}

	if err := c.Producer.SendPush(event); err != nil {
		c.Log.Warn("notification-usecase", fmt.Sprintf("push publish failed: %v", err), "publish", task.ID)
		return nil
	}

	c.Log.Info("notification-usecase", "notification dispatched", "publish",
		fmt.Sprintf("id=%s type=%s target=%d", task.ID, data.NotificationType(), targetID))
	return nil
}
