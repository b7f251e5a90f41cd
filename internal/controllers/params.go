package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "gearguard/pkg/errors"
)

// parseIDParam читает :id из пути; ноль и не-числа - ошибка 400.
func parseIDParam(ctx echo.Context) (uint64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}

// bindAndValidate разбирает JSON-тело и прогоняет его через валидатор echo.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil)
	}
	return ctx.Validate(payload)
}
