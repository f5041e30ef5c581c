package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrJSONMapScan is returned when a database value can not be decoded into a JSONMap.
var ErrJSONMapScan = errors.New("unsupported source type for JSONMap")

// JSONMap is a heterogeneous string-keyed map stored as a JSON column.
// Values keep whatever JSON type they were written with (string, number, bool).
// An empty map is serialized as {} rather than NULL so that "empty" and
// "absent" stay distinguishable in the database.
type JSONMap map[string]any

// Value implements driver.Valuer for GORM.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONMap: %w", err)
	}

	return out, nil
}

// Scan implements sql.Scanner for GORM.
func (m *JSONMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		if len(v) == 0 {
			*m = JSONMap{}
			return nil
		}

		return json.Unmarshal(v, m)
	case string:
		if v == "" {
			*m = JSONMap{}
			return nil
		}

		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("%w: %T", ErrJSONMapScan, src)
	}
}

// Clone returns a shallow copy of the map.
// Used to hand out default bags without exposing the shared table.
func (m JSONMap) Clone() JSONMap {
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
