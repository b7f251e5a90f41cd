// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	rules := map[string][]string{
		"maintenance_stage": constants.Stages,
		"request_type":      constants.RequestTypes,
		"request_priority":  constants.Priorities,
		"equipment_status":  constants.EquipmentStatuses,
		"user_role":         constants.Roles,
	}
	for tag, allowed := range rules {
		if err := v.RegisterValidation(tag, oneOfValues(allowed)); err != nil {
			return err
		}
	}

	return nil
}

// oneOfValues в отличие от встроенного oneof понимает значения с пробелами ("In Progress").
func oneOfValues(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return constants.Contains(allowed, field.String())
	}
}

// registerNullTypes учит валидатор "смотреть внутрь" типов null.* и наших обёрток.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil // nil, чтобы сработал `omitempty`
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Uint64); ok && val.Valid {
			return val.Uint64
		}
		return nil
	}, null.Uint64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.OptionalID); ok && val.Valid() {
			return val.Value()
		}
		return nil
	}, types.OptionalID{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.Date); ok && val.Valid {
			return val.Time.Time
		}
		return nil
	}, types.Date{})
}
