package http

import (
	"trip-service/src/internal/delivery/http/middleware"
	"trip-service/src/internal/model"
	"trip-service/src/internal/usecase"
	"trip-service/src/pkg/log"
	"trip-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TripController struct {
	Log     log.Log
	UseCase *usecase.TripUseCase
}

func NewTripController(useCase *usecase.TripUseCase, logger log.Log) *TripController {
	return &TripController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *TripController) GetTrip(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.GetTripRequest{
		OrganizationID: auth.Metadata.OrganizationID,
		TripCode:       ctx.Params("tripCode"),
	}
	result := c.UseCase.GetTrip(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Trip Detail", fiber.StatusOK, ctx)
}

func (c *TripController) EditStatus(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.EditStatusRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("TripController.EditStatus", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.OrganizationID = auth.Metadata.OrganizationID
	request.CreatedByID = auth.Metadata.UserID
	request.Locale = auth.Metadata.Locale
	request.Token = middleware.GetToken(ctx)
	request.TripCode = ctx.Params("tripCode")

	result := c.UseCase.EditStatus(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Trip Status Updated", fiber.StatusOK, ctx)
}

func (c *TripController) UpdateBillOfLading(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.BillOfLadingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("TripController.UpdateBillOfLading", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.OrganizationID = auth.Metadata.OrganizationID
	request.CreatedByID = auth.Metadata.UserID
	request.Locale = auth.Metadata.Locale
	request.Token = middleware.GetToken(ctx)
	request.TripCode = ctx.Params("tripCode")

	result := c.UseCase.UpdateBillOfLading(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Bill Of Lading Updated", fiber.StatusOK, ctx)
}
