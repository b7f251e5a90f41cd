package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(
	maintenanceService services.MaintenanceServiceInterface,
	logger *zap.Logger,
) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

func (c *MaintenanceController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, err := c.maintenanceService.ListRequests(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetRequests: ошибка при получении заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusOK)
}

func (c *MaintenanceController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateMaintenanceRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateRequest: некорректные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateRequest: ошибка при создании заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusCreated)
}

func (c *MaintenanceController) TransitionStage(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var patch dto.TransitionStageDTO
	if err := bindAndValidate(ctx, &patch); err != nil {
		c.logger.Warn("TransitionStage: некорректные данные", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.TransitionStage(ctx.Request().Context(), id, patch)
	if err != nil {
		c.logger.Error("TransitionStage: ошибка при смене этапа", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusOK)
}
