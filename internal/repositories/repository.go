package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

// Коды ошибок PostgreSQL, которые означают некорректные входные данные.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

const equipmentSerialIndex = "equipments_serial_number_uniq"

// translatePgError превращает нарушения ограничений схемы в ошибки валидации,
// остальные ошибки возвращает как есть.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == equipmentSerialIndex {
			return apperrors.ErrDuplicateSerial
		}
		return apperrors.NewInvalidInputError("значение уже существует (%s)", pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", apperrors.ErrUnresolvedRelation, pgErr.ConstraintName)
	case pgCheckViolation:
		return apperrors.NewInvalidInputError("недопустимое значение (%s)", pgErr.ConstraintName)
	default:
		return err
	}
}

// normalizeIDFilters переводит значения filter[...] для полей-идентификаторов в uint64,
// чтобы в запрос уходили числа, а не строки из query.
func normalizeIDFilters(filter types.Filter, fields ...string) (types.Filter, error) {
	if len(filter.Filter) == 0 {
		return filter, nil
	}

	normalized := make(map[string]interface{}, len(filter.Filter))
	for k, v := range filter.Filter {
		normalized[k] = v
	}

	for _, field := range fields {
		raw, ok := normalized[field]
		if !ok {
			continue
		}
		parts := strings.Split(fmt.Sprint(raw), ",")
		ids := make([]uint64, 0, len(parts))
		for _, p := range parts {
			id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return filter, apperrors.NewInvalidInputError("некорректное значение фильтра %s: %q", field, p)
			}
			ids = append(ids, id)
		}
		ids = lo.Uniq(ids)
		if len(ids) == 1 {
			normalized[field] = ids[0]
		} else {
			normalized[field] = ids
		}
	}

	filter.Filter = normalized
	return filter, nil
}
