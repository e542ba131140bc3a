package converter

import (
	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
)

func TripToResponse(trip *entity.Trip, statuses []entity.TripStatus) *model.TripResponse {
	resp := &model.TripResponse{
		ID:                   trip.ID,
		Code:                 trip.Code,
		OrderID:              trip.OrderID,
		DriverID:             trip.DriverID,
		DriverFullName:       trip.DriverFullName,
		VehicleNumber:        trip.VehicleNumber,
		Weight:               trip.Weight,
		PickupDate:           trip.PickupDate,
		DeliveryDate:         trip.DeliveryDate,
		LastStatusType:       trip.LastStatusType,
		BillOfLading:         trip.BillOfLading,
		BillOfLadingReceived: trip.BillOfLadingReceived,
		UpdatedAt:            trip.UpdatedAt,
	}
	for _, s := range statuses {
		resp.Statuses = append(resp.Statuses, TripStatusToResponse(&s))
	}
	return resp
}

func TripStatusToResponse(status *entity.TripStatus) model.TripStatusResponse {
	return model.TripStatusResponse{
		ID:             status.ID,
		Type:           string(status.Type),
		Seq:            status.Seq,
		Notes:          status.Notes,
		DriverReportID: status.DriverReportID,
		CreatedByID:    status.CreatedByID,
		CreatedAt:      status.CreatedAt,
	}
}
