package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	res, err := c.userService.GetUsers(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetUsers: ошибка при получении пользователей", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusOK)
}

func (c *UserController) GetTechnicians(ctx echo.Context) error {
	res, err := c.userService.GetTechnicians(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetTechnicians: ошибка при получении техников", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateUser: некорректные данные", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateUser: ошибка при создании пользователя", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, http.StatusCreated)
}
