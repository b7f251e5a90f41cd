package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalID_UnmarshalJSON(t *testing.T) {
	type payload struct {
		TechnicianID OptionalID `json:"technicianId"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantValue uint64
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"technicianId": null}`, wantSet: true},
		{name: "empty string", body: `{"technicianId": ""}`, wantSet: true},
		{name: "zero", body: `{"technicianId": 0}`, wantSet: true},
		{name: "number", body: `{"technicianId": 12}`, wantSet: true, wantValid: true, wantValue: 12},
		{name: "numeric string", body: `{"technicianId": "42"}`, wantSet: true, wantValid: true, wantValue: 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.wantSet, p.TechnicianID.Set)
			assert.Equal(t, tc.wantValid, p.TechnicianID.Valid())
			assert.Equal(t, tc.wantValue, p.TechnicianID.Value())
		})
	}
}

func TestOptionalID_UnmarshalJSON_Invalid(t *testing.T) {
	var id OptionalID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &id))
}

func TestOptionalID_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(OptionalIDFrom(5))
	require.NoError(t, err)
	assert.Equal(t, `5`, string(b))

	b, err = json.Marshal(OptionalID{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantValid bool
		want      time.Time
	}{
		{name: "null", body: `null`},
		{name: "empty", body: `""`},
		{name: "date input", body: `"2025-03-14"`, wantValid: true, want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", body: `"2025-03-14T08:30:00Z"`, wantValid: true, want: time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)},
		{name: "datetime-local", body: `"2025-03-14T08:30"`, wantValid: true, want: time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tc.body), &d))
			assert.Equal(t, tc.wantValid, d.Valid)
			if tc.wantValid {
				assert.True(t, tc.want.Equal(d.Time.Time))
			}
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"14/03/2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}
