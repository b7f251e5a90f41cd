package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

// OptionalID - идентификатор из JSON с тремя состояниями:
// поле отсутствует (Set=false), явно пустое - null или "" (Set=true, Valid=false),
// задано (Set=true, Valid=true). Числа принимаются и в виде строк.
type OptionalID struct {
	ID  null.Uint64
	Set bool
}

func OptionalIDFrom(id uint64) OptionalID {
	return OptionalID{ID: null.Uint64From(id), Set: true}
}

func (o OptionalID) Valid() bool { return o.ID.Valid }

func (o OptionalID) Value() uint64 { return o.ID.Uint64 }

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.ID = null.Uint64{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректный идентификатор %q", raw)
	}
	if v == 0 {
		return nil
	}
	o.ID = null.Uint64From(v)
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	return o.ID.MarshalJSON()
}

// Date принимает как "2006-01-02" (поле <input type="date">), так и RFC3339.
type Date struct {
	null.Time
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func DateFrom(t time.Time) Date {
	return Date{Time: null.TimeFrom(t)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	d.Time = null.Time{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("дата должна быть строкой: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = null.TimeFrom(t)
			return nil
		}
	}
	return fmt.Errorf("некорректный формат даты %q", s)
}
