package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

// ErrorBody - единый формат ошибки API.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
	}

	for key, vals := range values {
		vals = lo.Compact(vals)
		if len(vals) == 0 {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		// повторяющийся filter[x] склеивается через запятую, как filter[x]=a,b
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = strings.Join(vals, ",")
		}
	}

	return filterReq
}

// SuccessResponse отдает тело как есть: массив или объект.
func SuccessResponse(ctx echo.Context, body interface{}, code int) error {
	return ctx.JSON(code, body)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Details),
			)
		}
		return c.JSON(httpErr.Code, ErrorBody{Error: httpErr.Message, Details: httpErr.Details})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		details := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
			details[e.Field()] = e.Tag()
		}
		return c.JSON(http.StatusBadRequest, ErrorBody{
			Error:   "Ошибка валидации: " + strings.Join(msgs, "; "),
			Details: details,
		})
	}

	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Unexpected Error", zap.Error(err))
		return c.JSON(code, ErrorBody{Error: "Внутренняя ошибка сервера"})
	}
	return c.JSON(code, ErrorBody{Error: err.Error()})
}
