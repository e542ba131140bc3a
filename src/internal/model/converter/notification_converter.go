package converter

import (
	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/pkg/utils"
)

// NotificationEnrichment is everything the payload builders may draw from,
// assembled by the worker from trip/order/user reads.
type NotificationEnrichment struct {
	Trip             *entity.Trip
	Order            *entity.Order
	DriverFullName   string
	PickupPointLabel string
	DriverReportID   *uint64
	BillOfLading     string
	Currency         string
}

func NewTripPendingConfirmationData(e NotificationEnrichment) model.TripPendingConfirmationData {
	return model.TripPendingConfirmationData{
		DriverFullName: e.DriverFullName,
		OrderCode:      e.Order.Code,
		TripCode:       e.Trip.Code,
		VehicleNumber:  e.Trip.VehicleNumber,
		Weight:         e.Trip.Weight,
		UnitOfMeasure:  e.Order.UnitOfMeasure,
		PickupDate:     e.Trip.PickupDate,
	}
}

func NewTripConfirmedData(e NotificationEnrichment) model.TripConfirmedData {
	return model.TripConfirmedData{
		DriverFullName: e.DriverFullName,
		OrderCode:      e.Order.Code,
		TripCode:       e.Trip.Code,
		VehicleNumber:  e.Trip.VehicleNumber,
	}
}

func NewTripStatusChangedData(e NotificationEnrichment, statusType entity.TripStatusType) model.TripStatusChangedData {
	data := model.TripStatusChangedData{
		DriverFullName: e.DriverFullName,
		OrderCode:      e.Order.Code,
		TripCode:       e.Trip.Code,
		TripStatus:     string(statusType),
		DriverReportID: e.DriverReportID,
	}
	if e.Order.GroupCode != nil {
		data.OrderGroupCode = *e.Order.GroupCode
	}
	if e.Trip.DriverCost > 0 {
		data.DriverCost = utils.FormatCurrency(e.Trip.DriverCost, e.Currency)
	}
	return data
}

func NewBillOfLadingReceivedData(e NotificationEnrichment) model.BillOfLadingReceivedData {
	return model.BillOfLadingReceivedData{
		DriverFullName: e.DriverFullName,
		OrderCode:      e.Order.Code,
		TripCode:       e.Trip.Code,
		BillOfLading:   e.BillOfLading,
	}
}

func NewOrderCompletedData(e NotificationEnrichment) model.OrderCompletedData {
	data := model.OrderCompletedData{
		OrderCode:        e.Order.Code,
		Weight:           e.Order.Weight,
		UnitOfMeasure:    e.Order.UnitOfMeasure,
		PickupPointLabel: e.PickupPointLabel,
	}
	if e.Order.GroupCode != nil {
		data.OrderGroupCode = *e.Order.GroupCode
	}
	return data
}
