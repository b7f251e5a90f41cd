package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/pkg/types"
)

var testMap = map[string]string{
	"stage":       "mr.stage",
	"equipmentId": "mr.equipment_id",
	"createdAt":   "mr.created_at",
}

func TestApplyListParams(t *testing.T) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	t.Run("фильтр по списку значений и сортировка", func(t *testing.T) {
		filter := types.Filter{
			Filter: map[string]interface{}{"stage": "New,In Progress"},
			Sort:   map[string]string{"createdAt": "desc"},
		}
		query, args, err := ApplyListParams(psql.Select("mr.id").From("maintenance_requests mr"), filter, testMap).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT mr.id FROM maintenance_requests mr WHERE mr.stage IN ($1,$2) ORDER BY mr.created_at DESC", query)
		assert.Equal(t, []interface{}{"New", "In Progress"}, args)
	})

	t.Run("неизвестные поля игнорируются", func(t *testing.T) {
		filter := types.Filter{
			Filter: map[string]interface{}{"password": "x"},
			Sort:   map[string]string{"password": "asc"},
		}
		query, args, err := ApplyListParams(psql.Select("mr.id").From("maintenance_requests mr"), filter, testMap).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT mr.id FROM maintenance_requests mr", query)
		assert.Empty(t, args)
		assert.False(t, HasSort(filter, testMap))
	})

	t.Run("одиночное значение", func(t *testing.T) {
		filter := types.Filter{Filter: map[string]interface{}{"equipmentId": "7"}}
		query, args, err := ApplyListParams(psql.Select("mr.id").From("maintenance_requests mr"), filter, testMap).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT mr.id FROM maintenance_requests mr WHERE mr.equipment_id = $1", query)
		assert.Equal(t, []interface{}{"7"}, args)
	})
}
