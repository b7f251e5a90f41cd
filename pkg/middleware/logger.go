// pkg/middleware/logger.go

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/pkg/utils"
)

const loggerKey = "logger"

// InjectLogger кладет в контекст запроса логгер с request id.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				reqLogger = logger.With(zap.String("request_id", id))
			}
			c.Set(loggerKey, reqLogger)
			return next(c)
		}
	}
}

// LoggerFrom достает логгер, положенный InjectLogger, или возвращает fallback.
func LoggerFrom(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// AccessLog пишет по строке на каждый HTTP-запрос.
func AccessLog(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}

			switch {
			case res.Status >= 500:
				LoggerFrom(c, logger).Error("HTTP запрос", fields...)
			case res.Status >= 400:
				LoggerFrom(c, logger).Warn("HTTP запрос", fields...)
			default:
				LoggerFrom(c, logger).Info("HTTP запрос", fields...)
			}
			return nil
		}
	}
}

// RequestTimeout ограничивает время обработки запроса (и всех запросов к БД внутри него).
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := utils.ContextWithTimeout(c, timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
