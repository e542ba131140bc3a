package usecase

import (
	"context"
	"fmt"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/pkg/databases/mysql"

	"github.com/google/uuid"
)

// terminal trip states that count toward order fulfilment
var deliveredOrBeyond = []entity.TripStatusType{
	entity.TripStatusDelivered,
	entity.TripStatusCompleted,
}

// applyOrderRollup re-derives parent aggregate state after a committed
// DELIVERED/COMPLETED transition. Every failure here is logged and swallowed:
// the trip transition is already durable.
func (c *TripUseCase) applyOrderRollup(ctx context.Context, orgID, createdByID uint64, orderCtx *model.OrderContext, order *entity.Order, statusType entity.TripStatusType, push bool, locale, token string) {
	if statusType != entity.TripStatusDelivered && statusType != entity.TripStatusCompleted {
		return
	}
	if orderCtx == nil {
		return
	}

	if c.isOrderCompleted(ctx, orgID, orderCtx) {
		inserted, err := c.markOrderCompleted(ctx, orgID, createdByID, order.ID)
		if err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("order completion rollup failed: %v", err), "applyOrderRollup", orderCtx.Code)
		} else if inserted && push {
			c.enqueueNotification(ctx, model.NotificationTask{
				ID:             uuid.NewString(),
				Kind:           model.KindOrderCompleted,
				OrganizationID: orgID,
				CreatedByID:    createdByID,
				OrderID:        order.ID,
				Locale:         locale,
				Token:          token,
			})
		}
	}

	if order.GroupID == nil {
		return
	}

	enabled, err := c.OrderGroupRepository.ConsolidationEnabled(ctx, orgID)
	if err != nil {
		c.Log.Error("trip-usecase", fmt.Sprintf("failed to read consolidation setting: %v", err), "applyOrderRollup", "")
		return
	}
	if !enabled {
		return
	}

	switch statusType {
	case entity.TripStatusCompleted:
		err = c.updateOrderGroupStatusIfAllTripsCompleted(ctx, orgID, createdByID, *order.GroupID)
	case entity.TripStatusDelivered:
		err = c.updateOrderGroupStatusIfAllTripsDelivered(ctx, orgID, createdByID, *order.GroupID)
	}
	if err != nil {
		c.Log.Error("trip-usecase", fmt.Sprintf("order group rollup failed: %v", err), "applyOrderRollup", fmt.Sprintf("groupId=%d", *order.GroupID))
	}
}

// isOrderCompleted re-derives the completion predicate fresh on every call:
// the order's full capacity is consumed and every planned trip has reached a
// terminal delivered/completed state.
func (c *TripUseCase) isOrderCompleted(ctx context.Context, orgID uint64, orderCtx *model.OrderContext) bool {
	if orderCtx.RemainingWeightCapacity > 0 {
		return false
	}

	count, err := c.OrderRepository.CountTripsInStatus(ctx, orgID, orderCtx.Code, deliveredOrBeyond)
	if err != nil {
		c.Log.Error("trip-usecase", fmt.Sprintf("failed to count terminal trips: %v", err), "isOrderCompleted", orderCtx.Code)
		return false
	}

	return count >= orderCtx.TotalTripCount
}

// markOrderCompleted appends the COMPLETED order status once; the existence
// check shares the insert's transaction, so re-running the rollup cannot
// duplicate the entry.
func (c *TripUseCase) markOrderCompleted(ctx context.Context, orgID, createdByID, orderID uint64) (bool, error) {
	inserted := false

	err := c.DB.WithTransaction(ctx, func(tx mysql.Executor) error {
		has, err := c.OrderRepository.HasStatus(ctx, tx, orgID, orderID, entity.OrderStatusCompleted)
		if err != nil {
			return err
		}
		if has {
			return nil
		}

		_, err = c.OrderRepository.CreateStatus(ctx, tx, &entity.OrderStatus{
			OrganizationID: orgID,
			OrderID:        orderID,
			Type:           entity.OrderStatusCompleted,
			Seq:            entity.OrderStatusCompletedSeq,
			CreatedByID:    createdByID,
		})
		if err != nil {
			return err
		}

		inserted = true
		return nil
	})

	return inserted, err
}

func (c *TripUseCase) updateOrderGroupStatusIfAllTripsCompleted(ctx context.Context, orgID, createdByID, groupID uint64) error {
	all, err := c.OrderGroupRepository.AllGroupTripsInStatus(ctx, orgID, groupID, []entity.TripStatusType{entity.TripStatusCompleted})
	if err != nil {
		return err
	}
	if !all {
		return nil
	}

	return c.markGroupStatus(ctx, orgID, createdByID, groupID, entity.OrderGroupStatusCompleted)
}

func (c *TripUseCase) updateOrderGroupStatusIfAllTripsDelivered(ctx context.Context, orgID, createdByID, groupID uint64) error {
	all, err := c.OrderGroupRepository.AllGroupTripsInStatus(ctx, orgID, groupID, deliveredOrBeyond)
	if err != nil {
		return err
	}
	if !all {
		return nil
	}

	return c.markGroupStatus(ctx, orgID, createdByID, groupID, entity.OrderGroupStatusDelivered)
}

func (c *TripUseCase) markGroupStatus(ctx context.Context, orgID, createdByID, groupID uint64, statusType entity.OrderGroupStatusType) error {
	return c.DB.WithTransaction(ctx, func(tx mysql.Executor) error {
		has, err := c.OrderGroupRepository.HasStatus(ctx, tx, orgID, groupID, statusType)
		if err != nil {
			return err
		}
		if has {
			return nil
		}

		_, err = c.OrderGroupRepository.CreateStatus(ctx, tx, &entity.OrderGroupStatus{
			OrganizationID: orgID,
			GroupID:        groupID,
			Type:           statusType,
			CreatedByID:    createdByID,
		})
		return err
	})
}
