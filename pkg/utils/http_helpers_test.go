package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantSearch string
		wantFilter map[string]interface{}
		wantSort   map[string]string
	}{
		{
			name:       "comma separated list",
			query:      "filter[stage]=New,In%20Progress",
			wantFilter: map[string]interface{}{"stage": "New,In Progress"},
			wantSort:   map[string]string{},
		},
		{
			name:       "repeated filter key is merged",
			query:      "filter[stage]=New&filter[stage]=Repaired",
			wantFilter: map[string]interface{}{"stage": "New,Repaired"},
			wantSort:   map[string]string{},
		},
		{
			name:       "empty values are dropped",
			query:      "filter[stage]=&filter[stage]=Scrap&filter[type]=&search=",
			wantFilter: map[string]interface{}{"stage": "Scrap"},
			wantSort:   map[string]string{},
		},
		{
			name:       "sort direction is validated",
			query:      "sort[createdAt]=DESC&sort[subject]=sideways&search=pump",
			wantSearch: "pump",
			wantFilter: map[string]interface{}{},
			wantSort:   map[string]string{"createdAt": "desc"},
		},
		{
			name:       "unknown keys are ignored",
			query:      "page=2&filter[equipmentId]=7",
			wantFilter: map[string]interface{}{"equipmentId": "7"},
			wantSort:   map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got := ParseFilterFromQuery(values)

			assert.Equal(t, tt.wantSearch, got.Search)
			assert.Equal(t, tt.wantFilter, got.Filter)
			assert.Equal(t, tt.wantSort, got.Sort)
		})
	}
}
