package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"gearguard/pkg/types"
)

// ApplyListParams накладывает filter[...] и sort[...] на запрос.
// Поля, которых нет в allowedMap, молча пропускаются.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}

	if len(filter.Sort) > 0 {
		// map не гарантирует порядок, сортируем ключи для стабильного SQL
		fields := make([]string, 0, len(filter.Sort))
		for jsonField := range filter.Sort {
			fields = append(fields, jsonField)
		}
		sort.Strings(fields)

		for _, jsonField := range fields {
			dbCol, ok := allowedMap[jsonField]
			if !ok {
				continue
			}
			sqlDir := "ASC"
			if strings.ToLower(filter.Sort[jsonField]) == "desc" {
				sqlDir = "DESC"
			}
			builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
		}
	}

	return builder
}

// HasSort - есть ли в фильтре хотя бы одна разрешенная сортировка.
func HasSort(filter types.Filter, allowedMap map[string]string) bool {
	for jsonField := range filter.Sort {
		if _, ok := allowedMap[jsonField]; ok {
			return true
		}
	}
	return false
}
