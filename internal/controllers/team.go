package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type TeamController struct {
	teamService services.TeamServiceInterface
	logger      *zap.Logger
}

func NewTeamController(teamService services.TeamServiceInterface, logger *zap.Logger) *TeamController {
	return &TeamController{
		teamService: teamService,
		logger:      logger,
	}
}

func (c *TeamController) GetTeams(ctx echo.Context) error {
	res, err := c.teamService.GetTeams(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetTeams: ошибка при получении списка команд", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusOK)
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var payload dto.CreateTeamDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateTeam: некорректные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.teamService.CreateTeam(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateTeam: ошибка при создании команды", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusCreated)
}
