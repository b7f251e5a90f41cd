package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound = errors.New("запись не найдена")

	// Доменные
	ErrValidation         = errors.New("ошибка валидации")
	ErrEquipmentNotFound  = fmt.Errorf("оборудование не найдено: %w", ErrNotFound)
	ErrRequestNotFound    = fmt.Errorf("заявка на обслуживание не найдена: %w", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("команда не найдена: %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("пользователь не найден: %w", ErrNotFound)
	ErrDuplicateSerial    = fmt.Errorf("оборудование с таким серийным номером уже существует: %w", ErrValidation)
	ErrUnresolvedRelation = fmt.Errorf("связанная запись не существует: %w", ErrValidation)
)

// InvalidInputError - ошибка входных данных, которую можно показать клиенту как есть.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrValidation }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError несет HTTP-код, сообщение для клиента и исходную ошибку для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusCode сопоставляет ошибку с HTTP-кодом:
// валидация -> 400, не найдено -> 404, остальное -> 500.
func StatusCode(err error) int {
	var httpErr *HttpError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
