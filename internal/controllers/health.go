package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger - любая зависимость, доступность которой проверяет /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	database Pinger
	logger   *zap.Logger
}

func NewHealthController(database Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{database: database, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *HealthController) Health(ctx echo.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()

	if err := c.database.Ping(pingCtx); err != nil {
		c.logger.Warn("Health: база данных недоступна", zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unavailable"})
	}
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
